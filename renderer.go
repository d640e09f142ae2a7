package md2page

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2page/internal/fileutil"
	"github.com/alnah/go-md2page/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.ManualPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ Inserter                      = (*pipeline.MarkerInserter)(nil)
	_ Inserter                      = (*pipeline.PlaceholderInserter)(nil)
)

// filePermissions is the mode of a newly created output: rw-r--r--.
const filePermissions = 0o644

// Renderer renders a Markdown manual into an HTML page template.
// Create with NewRenderer and call Render once per build.
type Renderer struct {
	cfg           rendererConfig
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	inserters     []pipeline.Inserter
}

// NewRenderer creates a Renderer with the historical defaults: default paths,
// the "manual-content" container, the marker comment then the placeholder
// block, raw HTML passed through, no highlighting.
//
// The Markdown converter is probed for table and fenced code support before
// any file is touched; a failing probe returns ErrConverterUnavailable.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			paths:          DefaultPaths(),
			containerClass: DefaultContainerClass,
			marker:         DefaultMarker,
			placeholder:    DefaultPlaceholderPattern,
			rawHTML:        true,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.cfg.validate(); err != nil {
		return nil, err
	}

	if err := r.buildInserters(); err != nil {
		return nil, err
	}

	r.preprocessor = &pipeline.ManualPreprocessor{FrontMatter: r.cfg.frontMatter}

	// Create converter if not injected (e.g., by tests)
	if r.htmlConverter == nil {
		conv, err := pipeline.NewGoldmarkConverter(pipeline.ConverterOptions{
			RawHTML:        r.cfg.rawHTML,
			Highlight:      r.cfg.highlight,
			HighlightStyle: r.cfg.highlightStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing converter: %w", err)
		}
		r.htmlConverter = conv
	}

	if err := pipeline.CheckCapabilities(context.Background(), r.htmlConverter); err != nil {
		return nil, err
	}

	return r, nil
}

// validate checks paths and the container class.
func (c *rendererConfig) validate() error {
	named := []struct {
		name, value string
	}{
		{"template", c.paths.Template},
		{"output", c.paths.Output},
		{"manual", c.paths.Manual},
	}
	for _, p := range named {
		if strings.TrimSpace(p.value) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyPath, p.name)
		}
	}
	if filepath.Clean(c.paths.Template) == filepath.Clean(c.paths.Output) {
		return fmt.Errorf("%w: %s", ErrSamePath, c.paths.Output)
	}
	return pipeline.ValidateContainerClass(c.containerClass)
}

// buildInserters resolves the insertion strategies: custom inserters when
// given, otherwise the marker comment followed by the placeholder block.
func (r *Renderer) buildInserters() error {
	if len(r.cfg.inserters) > 0 {
		r.inserters = make([]pipeline.Inserter, 0, len(r.cfg.inserters))
		for _, ins := range r.cfg.inserters {
			if ins != nil {
				r.inserters = append(r.inserters, ins)
			}
		}
		return nil
	}

	inserters, err := pipeline.NewInserters(r.cfg.marker, r.cfg.placeholder)
	if err != nil {
		return err
	}
	r.inserters = inserters
	return nil
}

// Paths returns the files this Renderer reads and writes.
func (r *Renderer) Paths() Paths {
	return r.cfg.paths
}

// Render regenerates the output page.
//
// When the template is missing but a previous output exists, the output is
// renamed to the template path first; with neither present Render returns
// ErrNoTemplate without touching the filesystem. A template without any
// insertion point is written through unchanged and reported as StrategyNone.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	paths := r.cfg.paths
	res := &Result{Paths: paths}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	promoted, err := bootstrapTemplate(paths)
	if err != nil {
		return nil, err
	}
	res.Promoted = promoted

	tmpl, err := os.ReadFile(paths.Template) // #nosec G304 -- path is caller configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadTemplate, err)
	}

	manual, err := os.ReadFile(paths.Manual) // #nosec G304 -- path is caller configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadManual, err)
	}

	// Preprocess markdown
	body, meta := r.preprocessor.PreprocessMarkdown(ctx, string(manual))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	res.Title = meta.Title

	class := r.cfg.containerClass
	if meta.Class != "" {
		if err := pipeline.ValidateContainerClass(meta.Class); err != nil {
			return nil, fmt.Errorf("manual front matter: %w", err)
		}
		class = meta.Class
	}

	// Convert to HTML
	fragment, err := r.htmlConverter.ToHTML(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	page, strategy := pipeline.InsertFirst(string(tmpl), pipeline.WrapFragment(fragment, class), r.inserters...)
	res.Strategy = strategy

	if r.cfg.verify {
		n, err := pipeline.CountContainers(page, class)
		if err != nil {
			return nil, fmt.Errorf("verifying output: %w", err)
		}
		res.Containers = n
		res.Verified = true
		// A passed-through page may still hold a container from a previous render.
		if n == 0 || strategy == StrategyNone {
			return nil, fmt.Errorf("%w: %s (strategy %s)", ErrNoRenderedContent, paths.Output, strategy)
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := os.WriteFile(paths.Output, []byte(page), filePermissions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	res.HTML = []byte(page)
	return res, nil
}

// bootstrapTemplate promotes a previous output to the template path when no
// template exists. It reports whether a promotion happened.
func bootstrapTemplate(paths Paths) (bool, error) {
	if fileutil.PathExists(paths.Template) {
		return false, nil
	}
	if !fileutil.PathExists(paths.Output) {
		return false, fmt.Errorf("%w: %s (and no %s to promote)", ErrNoTemplate, paths.Template, paths.Output)
	}
	if err := fileutil.Promote(paths.Output, paths.Template); err != nil {
		return false, fmt.Errorf("%w: %w", ErrPromoteOutput, err)
	}
	return true, nil
}

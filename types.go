package md2page

import (
	"context"

	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/pipeline"
)

// ConverterName names the Markdown library in user-facing messages.
const ConverterName = pipeline.ConverterName

// Insertion strategies reported in Result.Strategy.
const (
	StrategyMarker      = pipeline.StrategyMarker
	StrategyPlaceholder = pipeline.StrategyPlaceholder
	StrategyNone        = pipeline.StrategyNone
)

// Default insertion points and container class.
const (
	DefaultMarker             = pipeline.DefaultMarker
	DefaultPlaceholderPattern = pipeline.DefaultPlaceholderPattern
	DefaultContainerClass     = pipeline.DefaultContainerClass
)

// Paths locates the files of a render.
type Paths struct {
	Template string // HTML shell with an insertion point
	Output   string // generated page, fully overwritten
	Manual   string // Markdown source
}

// DefaultPaths returns the historical layout relative to the working directory.
func DefaultPaths() Paths {
	return Paths{
		Template: config.DefaultTemplatePath,
		Output:   config.DefaultOutputPath,
		Manual:   config.DefaultManualPath,
	}
}

// Result describes a completed render.
type Result struct {
	Paths Paths

	// Promoted reports that the previous output became the template.
	Promoted bool

	// Strategy is the inserter that matched: StrategyMarker,
	// StrategyPlaceholder, or StrategyNone for pass-through.
	Strategy string

	// Title comes from the manual's front matter, when enabled and present.
	Title string

	// Containers is the number of rendered containers found by verification.
	// Only meaningful when Verified is true.
	Containers int
	Verified   bool

	// HTML is the content written to Paths.Output.
	HTML []byte
}

// Inserter places a rendered fragment into a template.
// Insert returns the template unchanged and false when its insertion point is absent.
type Inserter interface {
	Name() string
	Insert(template, fragment string) (string, bool)
}

// HTMLConverter converts Markdown to an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// NewMarkerInserter returns an Inserter replacing the first occurrence of marker.
func NewMarkerInserter(marker string) (Inserter, error) {
	ins, err := pipeline.NewMarkerInserter(marker)
	if err != nil {
		return nil, err
	}
	return ins, nil
}

// NewPlaceholderInserter returns an Inserter replacing the first match of pattern.
func NewPlaceholderInserter(pattern string) (Inserter, error) {
	ins, err := pipeline.NewPlaceholderInserter(pattern)
	if err != nil {
		return nil, err
	}
	return ins, nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	paths          Paths
	containerClass string
	marker         string
	placeholder    string
	inserters      []Inserter // overrides marker and placeholder when set
	rawHTML        bool
	highlight      bool
	highlightStyle string
	frontMatter    bool
	verify         bool
}

// WithPaths sets the template, output, and manual paths.
func WithPaths(p Paths) Option {
	return func(r *Renderer) {
		r.cfg.paths = p
	}
}

// WithContainerClass sets the class of the element wrapping the manual.
func WithContainerClass(class string) Option {
	return func(r *Renderer) {
		r.cfg.containerClass = class
	}
}

// WithMarker sets the literal marker comment searched first.
func WithMarker(marker string) Option {
	return func(r *Renderer) {
		r.cfg.marker = marker
	}
}

// WithPlaceholderPattern sets the RE2 pattern of the fallback placeholder block.
func WithPlaceholderPattern(pattern string) Option {
	return func(r *Renderer) {
		r.cfg.placeholder = pattern
	}
}

// WithInserters replaces the insertion strategies. They are tried in order.
func WithInserters(ins ...Inserter) Option {
	return func(r *Renderer) {
		r.cfg.inserters = ins
	}
}

// WithRawHTML controls whether raw HTML in the manual reaches the output.
func WithRawHTML(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.rawHTML = enabled
	}
}

// WithHighlighting enables chroma highlighting of fenced code with the named style.
func WithHighlighting(style string) Option {
	return func(r *Renderer) {
		r.cfg.highlight = true
		r.cfg.highlightStyle = style
	}
}

// WithFrontMatter strips a leading YAML front matter block from the manual.
func WithFrontMatter(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.frontMatter = enabled
	}
}

// WithVerify makes Render fail with ErrNoRenderedContent, before writing,
// when no inserter matched or the page would contain no rendered container.
func WithVerify(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.verify = enabled
	}
}

// WithHTMLConverter replaces the goldmark converter.
// The replacement still has to pass the startup capability check.
func WithHTMLConverter(conv HTMLConverter) Option {
	return func(r *Renderer) {
		r.htmlConverter = conv
	}
}

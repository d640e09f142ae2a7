package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for Markdown conversion.
var (
	ErrHTMLConversion       = errors.New("HTML conversion failed")
	ErrConverterUnavailable = errors.New("markdown converter lacks table or fenced code support")
	ErrUnknownStyle         = errors.New("unknown highlighting style")
)

// ConverterName identifies the conversion library in user-facing messages.
const ConverterName = "goldmark"

// capabilityProbe exercises every Markdown feature the manual relies on.
const capabilityProbe = "| a | b |\n|---|---|\n| 1 | 2 |\n\n```\nprint(1)\n```\n"

// Probe matchers tolerate markup added by the highlighter.
var (
	fencedCodePattern = regexp.MustCompile(`<pre[^>]*>\s*<code`)
	htmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// HTMLConverter abstracts Markdown to HTML fragment conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// ConverterOptions tunes the goldmark engine.
type ConverterOptions struct {
	RawHTML        bool   // pass raw HTML in the manual through to the output
	Highlight      bool   // highlight fenced code with chroma classes
	HighlightStyle string // chroma style name, only used when Highlight is set
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with table support.
// Fenced code blocks are part of CommonMark and need no extension.
func NewGoldmarkConverter(opts ConverterOptions) (*GoldmarkConverter, error) {
	exts := []goldmark.Extender{extension.Table}

	if opts.Highlight {
		style := strings.ToLower(opts.HighlightStyle)
		if style == "" {
			style = "github"
		}
		if _, ok := styles.Registry[style]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, opts.HighlightStyle)
		}
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // page stylesheet owns the colors
			),
		))
	}

	var rendererOpts []goldmark.Option
	if opts.RawHTML {
		// The manual is a trusted in-repo source that may embed HTML.
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	md := goldmark.New(append([]goldmark.Option{goldmark.WithExtensions(exts...)}, rendererOpts...)...)
	return &GoldmarkConverter{md: md}, nil
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// CheckCapabilities converts a small probe document and verifies that the
// converter emits both a table and a fenced code block.
func CheckCapabilities(ctx context.Context, conv HTMLConverter) error {
	out, err := conv.ToHTML(ctx, capabilityProbe)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w: %v", ErrConverterUnavailable, err)
	}

	var missing []string
	if !strings.Contains(out, "<table>") {
		missing = append(missing, "tables")
	}
	if !fencedCodePattern.MatchString(out) || !strings.Contains(htmlTag.ReplaceAllString(out, ""), "print(1)") {
		missing = append(missing, "fenced code")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConverterUnavailable, strings.Join(missing, ", "))
	}
	return nil
}

package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// ManualMeta holds the optional front matter of a manual.
type ManualMeta struct {
	Title string `yaml:"title"`
	Class string `yaml:"class"` // overrides the container class
}

// MarkdownPreprocessor defines the contract for manual preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) (string, ManualMeta)
}

// ManualPreprocessor prepares the manual source before conversion.
type ManualPreprocessor struct {
	// FrontMatter strips a leading front matter block and reads ManualMeta from it.
	FrontMatter bool
}

// PreprocessMarkdown normalizes line endings and, when enabled, splits off
// front matter. A block that fails to parse is left in the body.
func (p *ManualPreprocessor) PreprocessMarkdown(ctx context.Context, content string) (string, ManualMeta) {
	var meta ManualMeta

	if ctx.Err() != nil {
		return content, meta
	}

	content = normalizeLineEndings(content)
	if !p.FrontMatter {
		return content, meta
	}

	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return content, ManualMeta{}
	}
	return string(body), meta
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

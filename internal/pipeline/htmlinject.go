package pipeline

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Default insertion points and container class.
const (
	DefaultMarker             = "<!-- MANUAL_CONTENT -->"
	DefaultPlaceholderPattern = `(?s)<pre><code>LUA API REFERENCE.*?</code></pre>`
	DefaultContainerClass     = "manual-content"
)

// Strategy names reported by InsertFirst.
const (
	StrategyMarker      = "marker"
	StrategyPlaceholder = "placeholder"
	StrategyNone        = "none"
)

// Sentinel errors for inserter construction.
var (
	ErrInvalidMarker         = errors.New("insertion marker cannot be empty")
	ErrInvalidPattern        = errors.New("invalid placeholder pattern")
	ErrInvalidContainerClass = errors.New("invalid container class")
)

// cssClassName matches a single CSS class token.
var cssClassName = regexp.MustCompile(`^-?[A-Za-z_][-A-Za-z0-9_]*$`)

// Inserter places a rendered fragment into a template at a recognized point.
type Inserter interface {
	Name() string
	// Insert returns the updated template and true, or the template
	// unchanged and false when its insertion point is absent.
	Insert(template, fragment string) (string, bool)
}

// MarkerInserter replaces the first occurrence of a literal marker.
type MarkerInserter struct {
	Marker string
}

// NewMarkerInserter returns a MarkerInserter for marker.
func NewMarkerInserter(marker string) (*MarkerInserter, error) {
	if marker == "" {
		return nil, ErrInvalidMarker
	}
	return &MarkerInserter{Marker: marker}, nil
}

// Name implements Inserter.
func (m *MarkerInserter) Name() string { return StrategyMarker }

// Insert implements Inserter.
func (m *MarkerInserter) Insert(template, fragment string) (string, bool) {
	idx := strings.Index(template, m.Marker)
	if m.Marker == "" || idx == -1 {
		return template, false
	}
	return template[:idx] + fragment + template[idx+len(m.Marker):], true
}

// PlaceholderInserter replaces the first match of a legacy placeholder block.
// The replacement is literal; "$" in the fragment is not expanded.
type PlaceholderInserter struct {
	Pattern *regexp.Regexp
}

// NewPlaceholderInserter compiles pattern into a PlaceholderInserter.
func NewPlaceholderInserter(pattern string) (*PlaceholderInserter, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return &PlaceholderInserter{Pattern: re}, nil
}

// Name implements Inserter.
func (p *PlaceholderInserter) Name() string { return StrategyPlaceholder }

// Insert implements Inserter.
func (p *PlaceholderInserter) Insert(template, fragment string) (string, bool) {
	if p.Pattern == nil {
		return template, false
	}
	loc := p.Pattern.FindStringIndex(template)
	if loc == nil {
		return template, false
	}
	return template[:loc[0]] + fragment + template[loc[1]:], true
}

// NewInserters returns the marker strategy followed by the placeholder fallback.
func NewInserters(marker, pattern string) ([]Inserter, error) {
	m, err := NewMarkerInserter(marker)
	if err != nil {
		return nil, err
	}
	p, err := NewPlaceholderInserter(pattern)
	if err != nil {
		return nil, err
	}
	return []Inserter{m, p}, nil
}

// InsertFirst applies the first inserter whose insertion point is present.
// When none matches, the template is returned unchanged with StrategyNone.
func InsertFirst(template, fragment string, inserters ...Inserter) (string, string) {
	for _, ins := range inserters {
		if out, ok := ins.Insert(template, fragment); ok {
			return out, ins.Name()
		}
	}
	return template, StrategyNone
}

// ValidateContainerClass checks that class is a space-separated list of CSS class names.
func ValidateContainerClass(class string) error {
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidContainerClass)
	}
	for _, f := range fields {
		if !cssClassName.MatchString(f) {
			return fmt.Errorf("%w: %q", ErrInvalidContainerClass, f)
		}
	}
	return nil
}

// WrapFragment encloses fragment in a single styled container element.
func WrapFragment(fragment, class string) string {
	return `<div class="` + html.EscapeString(class) + `">` + fragment + `</div>`
}

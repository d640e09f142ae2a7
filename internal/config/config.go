package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-md2page/internal/fileutil"
	"github.com/alnah/go-md2page/internal/pipeline"
	"github.com/alnah/go-md2page/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxClassLength   = 200
	MaxMarkerLength  = 256
	MaxPatternLength = 1024
	MaxStyleLength   = 50
)

// Default file locations, relative to the working directory.
const (
	DefaultTemplatePath = "website/index.template.html"
	DefaultOutputPath   = "website/index.html"
	DefaultManualPath   = "engine/MANUAL.md"
	DefaultStyle        = "github"
)

// Config holds all configuration for a manual render.
type Config struct {
	Paths     PathsConfig     `yaml:"paths"`
	Render    RenderConfig    `yaml:"render"`
	Insert    InsertConfig    `yaml:"insert"`
	Highlight HighlightConfig `yaml:"highlight"`
}

// PathsConfig locates the three files of a render.
type PathsConfig struct {
	Template string `yaml:"template"`
	Output   string `yaml:"output"`
	Manual   string `yaml:"manual"`
}

// RenderConfig defines how the manual is converted and wrapped.
type RenderConfig struct {
	ContainerClass string `yaml:"containerClass"`
	RawHTML        bool   `yaml:"rawHTML"`     // pass raw HTML in the manual through
	FrontMatter    bool   `yaml:"frontMatter"` // strip YAML front matter from the manual
	Verify         bool   `yaml:"verify"`      // fail when the output has no container
}

// InsertConfig defines the insertion points searched in the template.
type InsertConfig struct {
	Marker      string `yaml:"marker"`
	Placeholder string `yaml:"placeholder"` // RE2 pattern
}

// HighlightConfig defines fenced code highlighting.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name
}

// DefaultConfig returns the configuration matching the historical layout:
// website/index.template.html + engine/MANUAL.md -> website/index.html.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Template: DefaultTemplatePath,
			Output:   DefaultOutputPath,
			Manual:   DefaultManualPath,
		},
		Render: RenderConfig{
			ContainerClass: pipeline.DefaultContainerClass,
			RawHTML:        true,
		},
		Insert: InsertConfig{
			Marker:      pipeline.DefaultMarker,
			Placeholder: pipeline.DefaultPlaceholderPattern,
		},
		Highlight: HighlightConfig{Style: DefaultStyle},
	}
}

// Validate checks required fields, field lengths, and the placeholder pattern.
// Called automatically by LoadConfig, but available for callers
// who construct or modify a Config manually (e.g., after merging CLI flags).
func (c *Config) Validate() error {
	paths := []struct {
		name, value string
	}{
		{"paths.template", c.Paths.Template},
		{"paths.output", c.Paths.Output},
		{"paths.manual", c.Paths.Manual},
	}
	for _, p := range paths {
		if strings.TrimSpace(p.value) == "" {
			return fmt.Errorf("%w: %s: required", ErrInvalidConfig, p.name)
		}
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}
	if filepath.Clean(c.Paths.Template) == filepath.Clean(c.Paths.Output) {
		return fmt.Errorf("%w: paths.template and paths.output must differ", ErrInvalidConfig)
	}

	if err := validateFieldLength("render.containerClass", c.Render.ContainerClass, MaxClassLength); err != nil {
		return err
	}
	if err := pipeline.ValidateContainerClass(c.Render.ContainerClass); err != nil {
		return fmt.Errorf("%w: render.containerClass: %v", ErrInvalidConfig, err)
	}

	if c.Insert.Marker == "" {
		return fmt.Errorf("%w: insert.marker: required", ErrInvalidConfig)
	}
	if err := validateFieldLength("insert.marker", c.Insert.Marker, MaxMarkerLength); err != nil {
		return err
	}
	if c.Insert.Placeholder == "" {
		return fmt.Errorf("%w: insert.placeholder: required", ErrInvalidConfig)
	}
	if err := validateFieldLength("insert.placeholder", c.Insert.Placeholder, MaxPatternLength); err != nil {
		return err
	}
	if _, err := regexp.Compile(c.Insert.Placeholder); err != nil {
		return fmt.Errorf("%w: insert.placeholder: %v", ErrInvalidConfig, err)
	}

	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2page/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2page", name+ext))
		}
	}

	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

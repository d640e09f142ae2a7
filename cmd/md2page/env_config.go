package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-md2page/internal/config"
)

// envPrefix namespaces the environment variables read by md2page.
const envPrefix = "MD2PAGE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2PAGE_CONFIG: config file name or path
	Template   string // MD2PAGE_TEMPLATE: template path
	Output     string // MD2PAGE_OUTPUT: output path
	Manual     string // MD2PAGE_MANUAL: manual path
	Class      string // MD2PAGE_CLASS: container class
	Highlight  string // MD2PAGE_HIGHLIGHT: chroma style, enables highlighting
}

// knownEnvVars lists valid MD2PAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2PAGE_CONFIG":    true,
	"MD2PAGE_TEMPLATE":  true,
	"MD2PAGE_OUTPUT":    true,
	"MD2PAGE_MANUAL":    true,
	"MD2PAGE_CLASS":     true,
	"MD2PAGE_HIGHLIGHT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("MD2PAGE_CONFIG"),
		Template:   getenv("MD2PAGE_TEMPLATE"),
		Output:     getenv("MD2PAGE_OUTPUT"),
		Manual:     getenv("MD2PAGE_MANUAL"),
		Class:      getenv("MD2PAGE_CLASS"),
		Highlight:  getenv("MD2PAGE_HIGHLIGHT"),
	}
}

// warnUnknownEnvVars writes warnings for unrecognized MD2PAGE_* variables.
// Helps catch typos like MD2PAGE_TEMPLTE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies set environment variables over the config.
// Resulting priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" {
		cfg.Paths.Template = env.Template
	}
	if env.Output != "" {
		cfg.Paths.Output = env.Output
	}
	if env.Manual != "" {
		cfg.Paths.Manual = env.Manual
	}
	if env.Class != "" {
		cfg.Render.ContainerClass = env.Class
	}

	// Highlight style auto-enables highlighting
	if env.Highlight != "" {
		cfg.Highlight.Style = env.Highlight
		cfg.Highlight.Enabled = true
	}
}

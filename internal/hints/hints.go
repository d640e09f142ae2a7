// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConverterUnavailable returns the remediation hint when the Markdown
// converter fails its startup probe.
func ForConverterUnavailable() string {
	return format("reinstall with 'go install github.com/alnah/go-md2page/cmd/md2page@latest' (requires github.com/yuin/goldmark with the table extension)")
}

// ForMissingTemplate returns hints when neither the template nor a previous
// output exists to bootstrap from.
func ForMissingTemplate(templatePath, outputPath string) string {
	return format("create " + templatePath + " containing <!-- MANUAL_CONTENT -->, or restore " + outputPath + " to promote it")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path and creating a config in ~/.config/go-md2page/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2page") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForNoRenderedContent returns hints when verification finds no container.
func ForNoRenderedContent(marker string) string {
	return format("add " + marker + " to the template, or drop --verify to allow pass-through")
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

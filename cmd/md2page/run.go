package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/fileutil"
	"github.com/alnah/go-md2page/internal/hints"
	"github.com/alnah/go-md2page/internal/yamlutil"
)

// commands lists the subcommands. Any other first argument is a render flag.
var commands = map[string]bool{
	"doctor":  true,
	"version": true,
	"help":    true,
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	return commands[s]
}

// runMain dispatches args (including the program name) and returns the exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) > 1 && isCommand(args[1]) {
		switch args[1] {
		case "version":
			printVersion(env)
			return ExitSuccess
		case "help":
			return runHelp(args[2:], env)
		case "doctor":
			return runDoctorCmd(ctx, args[2:], env)
		}
	}

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	flags, err := parseRenderFlags(rest)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		fmt.Fprintln(env.Stderr, "Run 'md2page --help' for usage.")
		return exitCodeFor(err)
	}

	switch {
	case flags.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.version:
		printVersion(env)
		return ExitSuccess
	}

	cfg, err := runRender(ctx, flags, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg, flags))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// printVersion prints the program version.
func printVersion(env *Environment) {
	fmt.Fprintf(env.Stdout, "md2page %s\n", Version)
}

// resolveConfig builds the effective configuration.
// Priority: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *renderFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over the config.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	// Path flags
	if flags.paths.template != "" {
		cfg.Paths.Template = flags.paths.template
	}
	if flags.paths.output != "" {
		cfg.Paths.Output = flags.paths.output
	}
	if flags.paths.manual != "" {
		cfg.Paths.Manual = flags.paths.manual
	}

	// Render flags
	if flags.render.class != "" {
		cfg.Render.ContainerClass = flags.render.class
	}
	if flags.render.highlight != "" {
		cfg.Highlight.Enabled = true
		cfg.Highlight.Style = flags.render.highlight
	}
	if flags.render.frontMatter {
		cfg.Render.FrontMatter = true
	}
	if flags.render.verify {
		cfg.Render.Verify = true
	}

	// Disable flags
	if flags.render.noRawHTML {
		cfg.Render.RawHTML = false
	}
}

// rendererOptions translates a validated config into Renderer options.
func rendererOptions(cfg *config.Config) []md2page.Option {
	opts := []md2page.Option{
		md2page.WithPaths(md2page.Paths{
			Template: cfg.Paths.Template,
			Output:   cfg.Paths.Output,
			Manual:   cfg.Paths.Manual,
		}),
		md2page.WithContainerClass(cfg.Render.ContainerClass),
		md2page.WithMarker(cfg.Insert.Marker),
		md2page.WithPlaceholderPattern(cfg.Insert.Placeholder),
		md2page.WithRawHTML(cfg.Render.RawHTML),
		md2page.WithFrontMatter(cfg.Render.FrontMatter),
		md2page.WithVerify(cfg.Render.Verify),
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, md2page.WithHighlighting(cfg.Highlight.Style))
	}
	return opts
}

// runRender renders the page and reports the outcome.
// The returned config is the effective one, for hints, even on error.
func runRender(ctx context.Context, flags *renderFlags, env *Environment) (*config.Config, error) {
	start := env.Now()

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return cfg, err
	}

	if flags.printConfig {
		data, err := yamlutil.Marshal(cfg)
		if err != nil {
			return cfg, fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return cfg, err
	}

	r, err := md2page.NewRenderer(rendererOptions(cfg)...)
	if err != nil {
		return cfg, err
	}

	res, err := r.Render(ctx)
	if err != nil {
		return cfg, err
	}

	printResult(res, flags.common, env, env.Now().Sub(start))
	return cfg, nil
}

// printResult writes the success message and, when verbose, the render details.
func printResult(res *md2page.Result, common commonFlags, env *Environment, elapsed time.Duration) {
	if common.quiet {
		return
	}

	if common.verbose {
		if res.Promoted {
			fmt.Fprintf(env.Stdout, "Promoted %s to %s\n", res.Paths.Output, res.Paths.Template)
		}
		if res.Title != "" {
			fmt.Fprintf(env.Stdout, "Title: %s\n", res.Title)
		}
		if res.Strategy == md2page.StrategyNone {
			fmt.Fprintf(env.Stdout, "No insertion point in %s, template copied unchanged\n", res.Paths.Template)
		} else {
			fmt.Fprintf(env.Stdout, "Inserted manual via %s\n", res.Strategy)
		}
		if res.Verified {
			fmt.Fprintf(env.Stdout, "Verified %d rendered container(s)\n", res.Containers)
		}
	}

	fmt.Fprintf(env.Stdout, "Generated %s from %s using '%s' lib\n", res.Paths.Output, res.Paths.Manual, md2page.ConverterName)

	if common.verbose {
		fmt.Fprintf(env.Stdout, "Done in %v\n", elapsed.Round(time.Millisecond))
	}
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, cfg *config.Config, flags *renderFlags) string {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	switch {
	case errors.Is(err, md2page.ErrConverterUnavailable):
		return hints.ForConverterUnavailable()
	case errors.Is(err, md2page.ErrNoTemplate):
		return hints.ForMissingTemplate(cfg.Paths.Template, cfg.Paths.Output)
	case errors.Is(err, md2page.ErrNoRenderedContent):
		return hints.ForNoRenderedContent(cfg.Insert.Marker)
	case errors.Is(err, md2page.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		name := flags.common.config
		if name == "" || fileutil.IsFilePath(name) {
			return hints.ForConfigNotFound(nil)
		}
		return hints.ForConfigNotFound(config.SearchPaths(name))
	}
	return ""
}

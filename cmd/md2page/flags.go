package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pathFlags holds file location flags.
type pathFlags struct {
	template string
	output   string
	manual   string
}

// renderOptionFlags holds rendering behavior flags.
type renderOptionFlags struct {
	class       string
	highlight   string
	frontMatter bool
	noRawHTML   bool
	verify      bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common      commonFlags
	paths       pathFlags
	render      renderOptionFlags
	printConfig bool
	version     bool
	help        bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show strategy and timing")
}

// addPathFlags adds file location flags to a FlagSet.
func addPathFlags(fs *flag.FlagSet, f *pathFlags) {
	fs.StringVar(&f.template, "template", "", "HTML template path")
	fs.StringVarP(&f.output, "output", "o", "", "generated page path")
	fs.StringVarP(&f.manual, "manual", "m", "", "Markdown manual path")
}

// addRenderOptionFlags adds rendering behavior flags to a FlagSet.
func addRenderOptionFlags(fs *flag.FlagSet, f *renderOptionFlags) {
	fs.StringVar(&f.class, "class", "", "container class (default manual-content)")
	fs.StringVar(&f.highlight, "highlight", "", "highlight fenced code with a chroma style")
	fs.BoolVar(&f.frontMatter, "front-matter", false, "strip YAML front matter from the manual")
	fs.BoolVar(&f.noRawHTML, "no-raw-html", false, "drop raw HTML from the manual")
	fs.BoolVar(&f.verify, "verify", false, "fail when the page has no rendered manual")
}

// newRenderFlagSet registers every render flag on a fresh FlagSet.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	addCommonFlags(fs, &f.common)
	addPathFlags(fs, &f.paths)
	addRenderOptionFlags(fs, &f.render)
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective config as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	return fs
}

// parseRenderFlags parses render flags. Positional arguments are rejected.
func parseRenderFlags(args []string) (*renderFlags, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	if err := parseNoArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseDoctorFlags parses doctor flags: the render flags plus --json.
func parseDoctorFlags(args []string) (*renderFlags, bool, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.Init("doctor", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "machine-readable output")
	if err := parseNoArgs(fs, args); err != nil {
		return nil, false, err
	}
	return f, *jsonOutput, nil
}

// parseNoArgs parses args and rejects positional arguments.
func parseNoArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return nil
}

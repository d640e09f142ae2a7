package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2page [flags]")
	fmt.Fprintln(w, "       md2page <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the Markdown manual into the website page.")
	fmt.Fprintln(w, "With no flags: engine/MANUAL.md + website/index.template.html -> website/index.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor     Check the converter and the configured files")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Files:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --template <path>     HTML template (default website/index.template.html)")
	fmt.Fprintln(w, "  -o, --output <path>       Generated page (default website/index.html)")
	fmt.Fprintln(w, "  -m, --manual <path>       Markdown manual (default engine/MANUAL.md)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --class <s>           Container class (default manual-content)")
	fmt.Fprintln(w, "      --highlight <style>   Highlight fenced code with a chroma style")
	fmt.Fprintln(w, "      --front-matter        Strip YAML front matter from the manual")
	fmt.Fprintln(w, "      --no-raw-html         Drop raw HTML from the manual")
	fmt.Fprintln(w, "      --verify              Fail when the page has no rendered manual")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show strategy and timing")
	fmt.Fprintln(w, "      --print-config        Print the effective config as YAML and exit")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2PAGE_CONFIG, MD2PAGE_TEMPLATE, MD2PAGE_OUTPUT, MD2PAGE_MANUAL,")
	fmt.Fprintln(w, "  MD2PAGE_CLASS, MD2PAGE_HIGHLIGHT")
	fmt.Fprintln(w, "  When set, they apply even with no flags and override the config file.")
	fmt.Fprintln(w, "  Flags override them. Check the effective paths with --print-config.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2page help <command>' for details on a specific command.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2page doctor [--json] [render flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the Markdown converter works and that the configured")
	fmt.Fprintln(w, "template, manual, and output locations are usable. Nothing is written.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Machine-readable output")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2page version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2page help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}

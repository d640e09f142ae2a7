package main

// Notes:
// - printUsage / runHelp: we test that each command has a help entry and that
//   unknown commands fail with a usage exit code on stderr.
// - Flags listed in help are cross-checked against the registered FlagSet so
//   the two cannot drift apart.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Help per command
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"no args", nil, ExitSuccess, "Usage: md2page [flags]"},
		{"doctor", []string{"doctor"}, ExitSuccess, "--json"},
		{"version", []string{"version"}, ExitSuccess, "Usage: md2page version"},
		{"help", []string{"help"}, ExitSuccess, "Usage: md2page help [command]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			if code := runHelp(tt.args, env.Environment); code != tt.wantCode {
				t.Errorf("runHelp() = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(env.stdout.String(), tt.want) {
				t.Errorf("stdout missing %q:\n%s", tt.want, env.stdout)
			}
		})
	}
}

func TestRunHelp_UnknownCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	if code := runHelp([]string{"convert"}, env.Environment); code != ExitUsage {
		t.Errorf("runHelp() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(env.stderr.String(), "Unknown command: convert") {
		t.Errorf("stderr = %q", env.stderr.String())
	}
	if env.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", env.stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestPrintUsage_ListsAllFlags - Help and FlagSet stay in sync
// ---------------------------------------------------------------------------

func TestPrintUsage_ListsAllFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	usage := buf.String()

	newRenderFlagSet(&renderFlags{}).VisitAll(func(f *flag.Flag) {
		if !strings.Contains(usage, "--"+f.Name) {
			t.Errorf("usage does not mention --%s", f.Name)
		}
		if f.Shorthand != "" && !strings.Contains(usage, "-"+f.Shorthand+", --"+f.Name) {
			t.Errorf("usage does not mention -%s, --%s", f.Shorthand, f.Name)
		}
	})

	if !strings.Contains(usage, "apply even with no flags") {
		t.Error("usage should say environment overrides apply without flags")
	}

	for name := range knownEnvVars {
		if !strings.Contains(usage, name) {
			t.Errorf("usage does not mention %s", name)
		}
	}
}

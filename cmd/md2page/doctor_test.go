package main

// Notes:
// - runDoctor: we test the file and insertion-point checks against temporary
//   files. The converter check always passes with goldmark; its failure
//   branch is covered by the pipeline package.
// - dirWritable: permission-based failures are platform-specific and skipped;
//   we test a missing directory instead.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2page/internal/config"
)

func doctorConfig(s *testSite) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Paths = config.PathsConfig{Template: s.template, Output: s.output, Manual: s.manual}
	return cfg
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		template     string
		output       string
		manual       string
		verify       bool
		wantStatus   string
		wantStrategy string
		wantMessage  string
	}{
		{
			name:         "ready with marker",
			template:     "<!-- MANUAL_CONTENT -->",
			manual:       "x",
			wantStatus:   statusReady,
			wantStrategy: "marker",
		},
		{
			name:         "ready with placeholder",
			template:     "<pre><code>LUA API REFERENCE\n</code></pre>",
			manual:       "x",
			wantStatus:   statusReady,
			wantStrategy: "placeholder",
		},
		{
			name:         "promotion pending",
			output:       "<!-- MANUAL_CONTENT -->",
			manual:       "x",
			wantStatus:   statusWarnings,
			wantStrategy: "marker",
			wantMessage:  "next render renames",
		},
		{
			name:         "pass-through warns",
			template:     "<p>static</p>",
			manual:       "x",
			wantStatus:   statusWarnings,
			wantStrategy: "none",
			wantMessage:  "No insertion point",
		},
		{
			name:         "pass-through fails with verify",
			template:     "<p>static</p>",
			manual:       "x",
			verify:       true,
			wantStatus:   statusErrors,
			wantStrategy: "none",
			wantMessage:  "No insertion point",
		},
		{
			name:         "promoted page with stale container fails with verify",
			output:       "<html><div class=\"manual-content\"><p>old</p></div></html>",
			manual:       "x",
			verify:       true,
			wantStatus:   statusErrors,
			wantStrategy: "none",
			wantMessage:  "1 stale rendered container",
		},
		{
			name:        "no template",
			manual:      "x",
			wantStatus:  statusErrors,
			wantMessage: "to promote",
		},
		{
			name:         "missing manual",
			template:     "<!-- MANUAL_CONTENT -->",
			wantStatus:   statusErrors,
			wantStrategy: "marker",
			wantMessage:  "Manual not readable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newTestSite(t, tt.template, tt.manual)
			if tt.output != "" {
				writeFile(t, s.output, tt.output)
			}
			cfg := doctorConfig(s)
			cfg.Render.Verify = tt.verify

			r := runDoctor(context.Background(), cfg, newTestEnv(nil).Environment)

			if r.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (warnings %v, errors %v)", r.Status, tt.wantStatus, r.Warnings, r.Errors)
			}
			if r.Files.Strategy != tt.wantStrategy {
				t.Errorf("Strategy = %q, want %q", r.Files.Strategy, tt.wantStrategy)
			}
			if !r.Converter.Capable {
				t.Errorf("Converter.Capable = false, errors %v", r.Errors)
			}
			if !r.Files.OutputDirOK {
				t.Error("OutputDirOK = false for a temp dir")
			}
			all := strings.Join(append(r.Warnings, r.Errors...), "\n")
			if tt.wantMessage != "" && !strings.Contains(all, tt.wantMessage) {
				t.Errorf("messages missing %q:\n%s", tt.wantMessage, all)
			}
		})
	}
}

func TestRunDoctor_OutputDirMissing(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, "<!-- MANUAL_CONTENT -->", "x")
	cfg := doctorConfig(s)
	cfg.Paths.Output = filepath.Join(s.dir, "missing", "index.html")

	r := runDoctor(context.Background(), cfg, newTestEnv(nil).Environment)
	if r.Files.OutputDirOK {
		t.Error("OutputDirOK = true, want false")
	}
	if r.Status != statusErrors {
		t.Errorf("Status = %q, want %q", r.Status, statusErrors)
	}
}

func TestRunDoctor_TemplateIsDirectory(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, "", "x")
	writeFile(t, s.output, "<!-- MANUAL_CONTENT -->")
	if err := os.Mkdir(s.template, 0o750); err != nil {
		t.Fatal(err)
	}

	r := runDoctor(context.Background(), doctorConfig(s), newTestEnv(nil).Environment)

	if !r.Files.TemplateExists {
		t.Error("TemplateExists = false, a directory blocks promotion like in Render")
	}
	all := strings.Join(append(r.Warnings, r.Errors...), "\n")
	if strings.Contains(all, "next render renames") {
		t.Errorf("doctor should not announce a promotion Render will not do:\n%s", all)
	}
	if !strings.Contains(all, "Template not readable") || r.Status != statusErrors {
		t.Errorf("Status = %q, messages:\n%s", r.Status, all)
	}
}

func TestRunDoctor_CI(t *testing.T) {
	t.Parallel()

	s := newTestSite(t, "<!-- MANUAL_CONTENT -->", "x")
	r := runDoctor(context.Background(), doctorConfig(s), newTestEnv(map[string]string{"GITHUB_ACTIONS": "true"}).Environment)
	if !r.Env.CI {
		t.Error("Env.CI = false, want true")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command output and exit codes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("human output", func(t *testing.T) {
		t.Parallel()

		s := newTestSite(t, "<!-- MANUAL_CONTENT -->", "x")
		env := newTestEnv(nil)
		args := []string{"--template", s.template, "-o", s.output, "-m", s.manual}

		if code := runDoctorCmd(context.Background(), args, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d, stdout:\n%s", code, env.stdout)
		}
		for _, want := range []string{"md2page doctor", "[OK] goldmark", "[OK] Insertion: marker", "Status: Ready to render"} {
			if !strings.Contains(env.stdout.String(), want) {
				t.Errorf("stdout missing %q:\n%s", want, env.stdout)
			}
		}
	})

	t.Run("json output with errors", func(t *testing.T) {
		t.Parallel()

		s := newTestSite(t, "", "x")
		env := newTestEnv(nil)
		args := []string{"--json", "--template", s.template, "-o", s.output, "-m", s.manual}

		if code := runDoctorCmd(context.Background(), args, env.Environment); code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}

		var r doctorResult
		if err := json.Unmarshal(env.stdout.Bytes(), &r); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, env.stdout)
		}
		if r.Status != statusErrors || r.Files.TemplateExists {
			t.Errorf("result = %+v", r)
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if code := runDoctorCmd(context.Background(), []string{"--nope"}, env.Environment); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})

	t.Run("via runMain", func(t *testing.T) {
		t.Parallel()

		s := newTestSite(t, "<!-- MANUAL_CONTENT -->", "x")
		env := newTestEnv(nil)
		args := []string{"md2page", "doctor", "--template", s.template, "-o", s.output, "-m", s.manual}

		if code := runMain(context.Background(), args, env.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, stdout:\n%s", code, env.stdout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Status lines
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status string
		want   string
	}{
		{statusReady, "Status: Ready to render"},
		{statusWarnings, "Status: Ready with warnings"},
		{statusErrors, "Status: Not ready (see errors above)"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printDoctorResult(&buf, &doctorResult{
				Status:   tt.status,
				Warnings: []string{"w1"},
				Errors:   []string{"e1"},
			})
			out := buf.String()
			for _, want := range []string{tt.want, "[WARN] w1", "[ERROR] e1", "[MISSING] Template"} {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

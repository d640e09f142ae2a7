package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/fileutil"
	"github.com/alnah/go-md2page/internal/pipeline"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Converter converterInfo `json:"converter"`
	Files     filesInfo     `json:"files"`
	Env       envInfo       `json:"environment"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// converterInfo holds the Markdown converter probe result.
type converterInfo struct {
	Name      string `json:"name"`
	Capable   bool   `json:"capable"`
	Highlight string `json:"highlight,omitempty"`
}

// filesInfo holds the state of the configured files.
type filesInfo struct {
	Template       string `json:"template"`
	TemplateExists bool   `json:"template_exists"`
	Output         string `json:"output"`
	OutputExists   bool   `json:"output_exists"`
	OutputDirOK    bool   `json:"output_dir_writable"`
	Manual         string `json:"manual"`
	ManualReadable bool   `json:"manual_readable"`
	Strategy       string `json:"strategy,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad usage.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	flags, jsonOutput, err := parseDoctorFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	if flags.help {
		printDoctorUsage(env.Stdout)
		return ExitSuccess
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, cfg, flags))
		return exitCodeFor(err)
	}

	result := runDoctor(ctx, cfg, env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks. It never writes the configured files.
func runDoctor(ctx context.Context, cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkConverter(ctx, cfg, result)
	checkFiles(cfg, result)
	checkInsertionPoint(cfg, result)
	checkEnvironment(env, result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkConverter runs the startup capability probe.
func checkConverter(ctx context.Context, cfg *config.Config, result *doctorResult) {
	result.Converter.Name = pipeline.ConverterName

	opts := pipeline.ConverterOptions{RawHTML: cfg.Render.RawHTML}
	if cfg.Highlight.Enabled {
		opts.Highlight = true
		opts.HighlightStyle = cfg.Highlight.Style
		result.Converter.Highlight = cfg.Highlight.Style
	}

	conv, err := pipeline.NewGoldmarkConverter(opts)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	if err := pipeline.CheckCapabilities(ctx, conv); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Converter.Capable = true
}

// checkFiles verifies that a render could read and write the configured files.
func checkFiles(cfg *config.Config, result *doctorResult) {
	f := &result.Files
	f.Template = cfg.Paths.Template
	f.Output = cfg.Paths.Output
	f.Manual = cfg.Paths.Manual

	// Same predicate as Render's bootstrap: a directory blocks promotion.
	f.TemplateExists = fileutil.PathExists(f.Template)
	f.OutputExists = fileutil.PathExists(f.Output)

	switch {
	case f.TemplateExists:
	case f.OutputExists:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Template %s missing: next render renames %s to it", f.Template, f.Output))
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("No template at %s and no %s to promote", f.Template, f.Output))
	}

	if file, err := os.Open(f.Manual); err != nil { // #nosec G304 -- path is user configuration
		result.Errors = append(result.Errors, fmt.Sprintf("Manual not readable: %v", err))
	} else {
		_ = file.Close()
		f.ManualReadable = true
	}

	f.OutputDirOK = dirWritable(filepath.Dir(f.Output))
	if !f.OutputDirOK {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Output directory not writable: %s", filepath.Dir(f.Output)))
	}
}

// dirWritable reports whether a file can be created in dir.
func dirWritable(dir string) bool {
	probe, err := os.CreateTemp(dir, ".md2page-doctor-*")
	if err != nil {
		return false
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return true
}

// checkInsertionPoint reports which strategy the template would use.
func checkInsertionPoint(cfg *config.Config, result *doctorResult) {
	source := cfg.Paths.Template
	if !result.Files.TemplateExists {
		if !result.Files.OutputExists {
			return
		}
		source = cfg.Paths.Output
	}

	data, err := os.ReadFile(source) // #nosec G304 -- path is user configuration
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template not readable: %v", err))
		return
	}

	inserters, err := pipeline.NewInserters(cfg.Insert.Marker, cfg.Insert.Placeholder)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}

	_, strategy := pipeline.InsertFirst(string(data), "", inserters...)
	result.Files.Strategy = strategy
	if strategy != pipeline.StrategyNone {
		return
	}

	msg := fmt.Sprintf("No insertion point in %s: the page would be copied unchanged", source)
	if !cfg.Render.Verify {
		result.Warnings = append(result.Warnings, msg)
		return
	}
	if n, err := pipeline.CountContainers(string(data), cfg.Render.ContainerClass); err == nil && n > 0 {
		msg += fmt.Sprintf(" (it holds %d stale rendered container(s))", n)
	}
	result.Errors = append(result.Errors, msg)
}

// checkEnvironment detects CI environments.
func checkEnvironment(env *Environment, result *doctorResult) {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if env.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2page doctor")
	fmt.Fprintln(w)

	// Converter section
	fmt.Fprintln(w, "Converter")
	if r.Converter.Capable {
		fmt.Fprintf(w, "  [OK] %s: tables, fenced code\n", r.Converter.Name)
		if r.Converter.Highlight != "" {
			fmt.Fprintf(w, "  [OK] Highlighting: %s\n", r.Converter.Highlight)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s: unavailable\n", r.Converter.Name)
	}
	fmt.Fprintln(w)

	// Files section
	fmt.Fprintln(w, "Files")
	printCheck(w, r.Files.TemplateExists, "Template: "+r.Files.Template)
	printCheck(w, r.Files.ManualReadable, "Manual: "+r.Files.Manual)
	printCheck(w, r.Files.OutputDirOK, "Output: "+r.Files.Output)
	if r.Files.Strategy != "" {
		fmt.Fprintf(w, "  [OK] Insertion: %s\n", r.Files.Strategy)
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to render")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printCheck prints one [OK] or [MISSING] line.
func printCheck(w io.Writer, ok bool, label string) {
	if ok {
		fmt.Fprintf(w, "  [OK] %s\n", label)
	} else {
		fmt.Fprintf(w, "  [MISSING] %s\n", label)
	}
}

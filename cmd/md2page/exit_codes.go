package main

import (
	"context"
	"errors"
	"os"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/config"
)

// Exit codes for md2page CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 128+SIGINT=interrupted.
const (
	ExitSuccess     = 0   // Page generated
	ExitGeneral     = 1   // General/unexpected error, converter unavailable
	ExitUsage       = 2   // Invalid flags, config, or validation
	ExitIO          = 3   // Missing template, unreadable or unwritable file
	ExitInterrupted = 130 // Interrupted by a signal
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Interrupted (exit 130)
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, md2page.ErrEmptyPath) ||
		errors.Is(err, md2page.ErrSamePath) ||
		errors.Is(err, md2page.ErrInvalidContainerClass) ||
		errors.Is(err, md2page.ErrInvalidMarker) ||
		errors.Is(err, md2page.ErrInvalidPattern) ||
		errors.Is(err, md2page.ErrUnknownStyle) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2page.ErrNoTemplate) ||
		errors.Is(err, md2page.ErrPromoteOutput) ||
		errors.Is(err, md2page.ErrReadTemplate) ||
		errors.Is(err, md2page.ErrReadManual) ||
		errors.Is(err, md2page.ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}

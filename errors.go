package md2page

import (
	"errors"

	"github.com/alnah/go-md2page/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Startup errors.
	ErrConverterUnavailable = pipeline.ErrConverterUnavailable
	ErrUnknownStyle         = pipeline.ErrUnknownStyle

	// Option validation errors.
	ErrEmptyPath             = errors.New("path cannot be empty")
	ErrSamePath              = errors.New("template and output paths must differ")
	ErrInvalidContainerClass = pipeline.ErrInvalidContainerClass
	ErrInvalidMarker         = pipeline.ErrInvalidMarker
	ErrInvalidPattern        = pipeline.ErrInvalidPattern

	// Render errors.
	ErrNoTemplate        = errors.New("no template found")
	ErrPromoteOutput     = errors.New("failed to promote output to template")
	ErrReadTemplate      = errors.New("failed to read template")
	ErrReadManual        = errors.New("failed to read manual")
	ErrWriteOutput       = errors.New("failed to write output")
	ErrHTMLConversion    = pipeline.ErrHTMLConversion
	ErrNoRenderedContent = errors.New("output contains no rendered manual")
)

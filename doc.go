// Package md2page renders a Markdown manual into a static HTML page.
//
// # Quick Start
//
// Create a renderer and render once per build:
//
//	r, err := md2page.NewRenderer()
//	if err != nil {
//	    log.Fatal(err) // ErrConverterUnavailable: no file was touched
//	}
//
//	res, err := r.Render(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Generated %s from %s\n", res.Paths.Output, res.Paths.Manual)
//
// With no options the renderer reads website/index.template.html and
// engine/MANUAL.md and writes website/index.html, relative to the working
// directory. Use WithPaths to point it elsewhere.
//
// # Rendering Pipeline
//
//  1. Bootstrap: a missing template is recreated by renaming the previous
//     output (no backup is kept)
//  2. Markdown preprocessing (line normalization, optional front matter)
//  3. Markdown to HTML fragment via Goldmark (tables, fenced code)
//  4. Wrapping in <div class="manual-content">
//  5. Insertion: the <!-- MANUAL_CONTENT --> marker first, then the legacy
//     <pre><code>LUA API REFERENCE ...</code></pre> placeholder block
//  6. Writing the page, fully overwriting the output
//
// A template with neither insertion point is written through unchanged and
// reported as StrategyNone. WithVerify turns that case into
// ErrNoRenderedContent.
//
// # Custom Insertion Points
//
// Inserters are tried in order and the first match wins:
//
//	marker, _ := md2page.NewMarkerInserter("<!-- API -->")
//	r, err := md2page.NewRenderer(md2page.WithInserters(marker))
//
// # Errors
//
// All errors wrap sentinel values usable with errors.Is: ErrNoTemplate,
// ErrReadTemplate, ErrReadManual, ErrWriteOutput, ErrConverterUnavailable,
// ErrNoRenderedContent, and option validation errors.
package md2page

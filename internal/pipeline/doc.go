// Package pipeline implements the manual rendering pipeline.
//
// The stages run in order:
//   - Markdown preprocessing (line normalization, optional front matter)
//   - Markdown to HTML fragment conversion via Goldmark (tables, fenced code)
//   - Wrapping the fragment in a styled container element
//   - Insertion into the page template via interchangeable inserters
//     (marker comment first, legacy placeholder block second)
//   - Optional verification of the written page
//
// File handling (bootstrap promotion, reads, the final write) lives in the
// root md2page package so these stages stay pure string transformations.
package pipeline

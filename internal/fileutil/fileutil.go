// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrSourceMissing = errors.New("source file does not exist")
	ErrTargetExists  = errors.New("target path already exists")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// PathExists returns true if anything exists at path.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Promote renames src to dst, turning a previously generated file into a
// source file. It refuses to overwrite an existing dst.
func Promote(src, dst string) error {
	if !PathExists(src) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}
	if PathExists(dst) {
		return fmt.Errorf("%w: %s", ErrTargetExists, dst)
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", src, dst, err)
	}
	return nil
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "md2page" -> false (name)
//   - "./md2page.yaml" -> true (relative path)
//   - "/etc/md2page.yaml" -> true (absolute)
//   - "C:\config\md2page.yaml" -> true (Windows)
//   - "site-docs" -> false (hyphenated name)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

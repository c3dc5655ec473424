// Package fileext normalizes file name suffixes for the on-disk
// format.
package fileext

import (
	"path/filepath"
	"strings"
)

// Ensure returns path guaranteed to carry ext (including the leading
// dot). A missing suffix is appended and a different one is replaced.
func Ensure(path, ext string) string {
	current := filepath.Ext(path)
	if current == ext {
		return path
	}
	if current == "" {
		return path + ext
	}
	return strings.TrimSuffix(path, current) + ext
}

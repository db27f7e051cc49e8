// Package domain holds the file-level model of a photo collection entry.
package domain

import (
	"path/filepath"
	"strings"
)

// ProcessedMarker separates the original base name from the appended
// location in an annotated filename. Its presence means the pipeline has
// already run on that file.
const ProcessedMarker = "__"

// ImageFile is the decomposed view of a candidate image path.
type ImageFile struct {
	Path string
	Dir  string
	Base string // file name without the final extension
	Ext  string // final extension including the dot, original case
}

func NewImageFile(path string) ImageFile {
	name := filepath.Base(path)
	ext := filepath.Ext(name)
	return ImageFile{
		Path: path,
		Dir:  filepath.Dir(path),
		Base: name[:len(name)-len(ext)],
		Ext:  ext,
	}
}

func (f ImageFile) Name() string {
	return f.Base + f.Ext
}

// Processed reports whether this file already carries an appended location.
func (f ImageFile) Processed() bool {
	return strings.Contains(f.Name(), ProcessedMarker)
}

// NameHasPrefix matches the filename prefix case-insensitively. Sidecar and
// thumbnail files use different naming conventions and fail this gate.
func (f ImageFile) NameHasPrefix(prefix string) bool {
	return strings.HasPrefix(strings.ToLower(f.Name()), strings.ToLower(prefix))
}

// AnnotatedName returns the canonical processed filename for this file and
// the given location string.
func (f ImageFile) AnnotatedName(location string) string {
	return f.Base + ProcessedMarker + location + f.Ext
}

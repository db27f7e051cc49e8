package tagger

import (
	"os"
	"path/filepath"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain"
)

// Finalize renames the file to its annotated form within the same directory
// and returns the new path. The double-underscore marker in the new name is
// what makes a later run skip the file.
func Finalize(file domain.ImageFile, location string) (string, error) {
	newPath := filepath.Join(file.Dir, file.AnnotatedName(location))
	if err := os.Rename(file.Path, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

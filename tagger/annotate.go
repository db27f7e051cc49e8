package tagger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/barasher/go-exiftool"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	userCommentTag   = "UserComment"
	commentSeparator = ";"
)

// FoldASCII folds a string to its closest plain-ASCII representation:
// combining marks are stripped from accented characters, any remaining
// non-ASCII rune is dropped. The embedded comment field of old tooling does
// not survive anything else.
func FoldASCII(s string) string {
	folded, _, err := transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		s,
	)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range folded {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MergeComment merges a location into an existing comment value without
// duplicating it. The second result is false when the comment already
// contains the folded location and nothing needs to be written.
func MergeComment(existing, location string) (string, bool) {
	folded := FoldASCII(location)
	if existing == "" {
		return folded, true
	}
	if strings.Contains(existing, folded) {
		return existing, false
	}
	return existing + commentSeparator + folded, true
}

// ExifComments reads and writes the EXIF UserComment tag through a
// long-running exiftool process. The process handles one command at a time,
// so concurrent Append calls are serialized.
type ExifComments struct {
	mu sync.Mutex
	et *exiftool.Exiftool
}

func NewExifComments() (*ExifComments, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("could not initialize exiftool: %w", err)
	}
	return &ExifComments{et: et}, nil
}

func (c *ExifComments) Close() {
	if c.et != nil {
		_ = c.et.Close()
	}
}

// Append merges the location into the file's UserComment and saves the file,
// leaving it untouched when the comment already carries the value. The write
// replaces the original in place, there is never a half-written copy next to
// it.
func (c *ExifComments) Append(path, location string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	current := c.et.ExtractMetadata(path)
	if len(current) == 0 {
		return fmt.Errorf("no metadata extracted from %s", path)
	}
	if current[0].Err != nil {
		return current[0].Err
	}
	existing, err := current[0].GetString(userCommentTag)
	if err != nil && !errors.Is(err, exiftool.ErrKeyNotFound) {
		return err
	}
	merged, changed := MergeComment(existing, location)
	if !changed {
		return nil
	}

	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	fm.SetString("EXIF:"+userCommentTag, merged)
	fm.SetString("-overwrite_original", "")
	write := []exiftool.FileMetadata{fm}
	c.et.WriteMetadata(write)
	return write[0].Err
}

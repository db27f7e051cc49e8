package domain

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// supportedExtensions lists the raster image formats the pipeline handles.
var supportedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".tiff": {},
	".bmp":  {},
	".gif":  {},
}

const sniffLen = 261 // filetype needs at most this many bytes

func IsSupportedExtension(path string) bool {
	_, found := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return found
}

// IsImageContent sniffs the file header to confirm the content actually is
// an image. Files with a lying extension are skipped rather than fed to the
// metadata tooling.
func IsImageContent(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	header := make([]byte, sniffLen)
	n, err := f.Read(header)
	if err != nil {
		return false
	}
	return filetype.IsImage(header[:n])
}

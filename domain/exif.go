package domain

import (
	"os"
	"time"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"

	"github.com/rwcarlsen/goexif/exif"
)

// MediaMetaData is the embedded metadata the pipeline cares about: when the
// photo was taken and, if recorded by the camera, where.
type MediaMetaData struct {
	DateTaken time.Time
	Location  *gps.Coordinates
}

// ReadMetaData decodes the EXIF block of the file at path. A missing
// date or GPS record is not an error, the corresponding field is simply
// left at its zero value.
func ReadMetaData(path string) (*MediaMetaData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ex, err := exif.Decode(f)
	if err != nil {
		return nil, err
	}
	var meta MediaMetaData
	if dateTaken, err := ex.DateTime(); err == nil {
		meta.DateTaken = dateTaken
	}
	if lat, long, err := ex.LatLong(); err == nil {
		meta.Location = gps.NewCoordinates(lat, long)
	}
	return &meta, nil
}

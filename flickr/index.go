package flickr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
	"github.com/marty-cz/human-readable-geo-position-in-photo/logging"

	"go.uber.org/zap"
)

// dateTakenLayout is the lexical form Flickr uses for capture dates.
const dateTakenLayout = "2006-01-02 15:04:05"

// CaptureRecord is one catalog entry: a remote photo with its capture date
// and, when the upload carried geo data, its coordinates.
type CaptureRecord struct {
	ID        string
	Title     string
	DateTaken time.Time
	Coords    *gps.Coordinates
}

// Index maps a normalized photo title to every catalog record sharing that
// title, in page-then-catalog order. A provider may assign the same title to
// multiple uploads or retakes.
type Index map[string][]CaptureRecord

func (ix Index) Lookup(title string) ([]CaptureRecord, bool) {
	records, found := ix[normalizeTitle(title)]
	return records, found
}

func (ix Index) Titles() int {
	return len(ix)
}

func normalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// ParseDateTaken parses Flickr's capture-date form, rejecting anything that
// does not match the documented layout.
func ParseDateTaken(s string) (time.Time, error) {
	t, err := time.Parse(dateTakenLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("capture date %q does not match %q: %w", s, dateTakenLayout, err)
	}
	return t, nil
}

// BuildIndex pages through the user's entire public catalog once. Transport
// errors abort the build, a single unparsable record is skipped with a
// warning and does not.
func BuildIndex(ctx context.Context, c *Client) (Index, error) {
	logger, _ := logging.SubFrom(ctx, "flickr-index")
	index := make(Index)
	var skipped int
	for page, pages := 1, 1; page <= pages; page++ {
		response, err := c.publicPhotosPage(page)
		if err != nil {
			return nil, err
		}
		pages = response.Photos.Pages
		for _, p := range response.Photos.Photo {
			taken, err := ParseDateTaken(p.DateTaken)
			if err != nil {
				skipped++
				logger.Warn("Skipping catalog record",
					zap.String("photo", p.ID),
					zap.Error(err))
				continue
			}
			record := CaptureRecord{ID: p.ID, Title: p.Title, DateTaken: taken}
			if p.Latitude != 0 || p.Longitude != 0 {
				record.Coords = gps.NewCoordinates(p.Latitude, p.Longitude)
			}
			key := normalizeTitle(p.Title)
			index[key] = append(index[key], record)
		}
		logger.Debug("Catalog page loaded",
			zap.Int("page", page),
			zap.Int("pages", pages),
			zap.Int("photos", len(response.Photos.Photo)))
	}
	logger.Info("Flickr catalog indexed",
		zap.Int("titles", len(index)),
		zap.Int("skippedRecords", skipped))
	return index, nil
}

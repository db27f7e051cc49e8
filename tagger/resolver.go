package tagger

import (
	"context"
	"path/filepath"
	"regexp"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain"
	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
	"github.com/marty-cz/human-readable-geo-position-in-photo/flickr"
	"github.com/marty-cz/human-readable-geo-position-in-photo/logging"

	"go.uber.org/zap"
)

// datePattern matches folder names that are just a date, e.g. 2022-03-19.
// Such folders carry no place information and are skipped by the fallback.
var datePattern = regexp.MustCompile(`^\d+-\d+-\d+$`)

// fallbackUnknown is used when every ancestor directory is a date folder.
const fallbackUnknown = "unknown"

// resolveLocation determines the location string for a file. The boolean
// reports whether an actual geo location was found, false means the terminal
// directory-name fallback was used.
func (t *Tagger) resolveLocation(ctx context.Context, file domain.ImageFile) (string, bool) {
	if address, found := t.resolveAddress(ctx, file); found {
		return FoldASCII(address.Canonical().String()), true
	}
	return FoldASCII(FallbackName(file)), false
}

// resolveAddress tries the catalog tier then the embedded-GPS tier. Errors
// within a tier are logged and treated as "no result", they never abort the
// file.
func (t *Tagger) resolveAddress(ctx context.Context, file domain.ImageFile) (gps.Address, bool) {
	logger, ctx := logging.SubFrom(ctx, "resolver")

	meta, err := t.readMeta(file.Path)
	if err != nil {
		logger.Debug("No embedded metadata", zap.Error(err))
		meta = &domain.MediaMetaData{}
	}

	if candidates, found := t.catalog.Lookup(file.Base); found {
		logger.Debug("Title found in catalog", zap.Int("candidates", len(candidates)))
		if meta.DateTaken.IsZero() {
			logger.Warn("File has no capture date, cannot match catalog records")
		} else if match, ok := flickr.MatchByDateTaken(meta.DateTaken, candidates); !ok {
			logger.Debug("No catalog record within capture-date tolerance")
		} else if address, err := t.locator.PhotoLocation(match.ID); err != nil {
			logger.Error("Catalog location lookup failed", zap.String("photo", match.ID), zap.Error(err))
			// The catalog record may carry the upload's own coordinates,
			// which stand in for the failed place lookup.
			if address, found := t.geocode(ctx, logger, match.Coords); found {
				return address, true
			}
		} else {
			logger.Debug("Using catalog photo location", zap.String("photo", match.ID))
			return *address, true
		}
	}

	if address, found := t.geocode(ctx, logger, meta.Location); found {
		return address, true
	}

	return gps.Address{}, false
}

func (t *Tagger) geocode(ctx context.Context, logger *zap.Logger, coords *gps.Coordinates) (gps.Address, bool) {
	if !coords.IsValid() {
		return gps.Address{}, false
	}
	address, found, err := t.geocoder.ReverseGeocode(ctx, coords.Lat, coords.Long)
	if err != nil {
		logger.Error("Reverse geocoding failed", zap.Stringer("coords", coords), zap.Error(err))
		return gps.Address{}, false
	}
	if !found {
		return gps.Address{}, false
	}
	return *address, true
}

// FallbackName walks the ancestor directories from nearest to farthest and
// returns the first whose name is not a pure date.
func FallbackName(file domain.ImageFile) string {
	for dir := file.Dir; ; {
		name := filepath.Base(dir)
		parent := filepath.Dir(dir)
		if name == "." || name == string(filepath.Separator) {
			break
		}
		if !datePattern.MatchString(name) {
			return name
		}
		if parent == dir {
			break
		}
		dir = parent
	}
	return fallbackUnknown
}

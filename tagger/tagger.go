// Package tagger runs the location-resolution pipeline over a photo
// directory tree: resolve a place for every eligible file, write it into the
// embedded comment, then seal the file by renaming it.
package tagger

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain"
	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
	"github.com/marty-cz/human-readable-geo-position-in-photo/flickr"
	"github.com/marty-cz/human-readable-geo-position-in-photo/geocoding"
	"github.com/marty-cz/human-readable-geo-position-in-photo/logging"

	"go.uber.org/zap"
)

// requiredPrefix gates which files are considered part of the collection.
// Sidecars and thumbnails produced by other tooling use different prefixes.
const requiredPrefix = "dsc"

// Catalog is the read-only view of the remote photo index.
type Catalog interface {
	Lookup(title string) ([]flickr.CaptureRecord, bool)
}

// PhotoLocator fetches the place description of a single remote photo.
type PhotoLocator interface {
	PhotoLocation(id string) (*gps.Address, error)
}

// CommentWriter merges a location string into a file's embedded comment.
type CommentWriter interface {
	Append(path, location string) error
}

type Options struct {
	DryRun bool
}

type Tagger struct {
	catalog  Catalog
	locator  PhotoLocator
	geocoder geocoding.Resolver
	comments CommentWriter
	readMeta func(path string) (*domain.MediaMetaData, error)
	dryRun   bool
}

func New(catalog Catalog, locator PhotoLocator, geocoder geocoding.Resolver, comments CommentWriter, opts Options) *Tagger {
	return &Tagger{
		catalog:  catalog,
		locator:  locator,
		geocoder: geocoder,
		comments: comments,
		readMeta: domain.ReadMetaData,
		dryRun:   opts.DryRun,
	}
}

// ProcessFile runs the pipeline on a single file. Every call emits exactly
// one terminal log line: renamed, skipped, dry-run or failed.
func (t *Tagger) ProcessFile(ctx context.Context, path string) {
	logger, ctx := logging.FromWithNameAndFields(ctx, "tagger", zap.String("file", path))
	file := domain.NewImageFile(path)
	if !file.NameHasPrefix(requiredPrefix) {
		logger.Warn("Unsupported file name, skipping", zap.String("requiredPrefix", requiredPrefix))
		return
	}
	if file.Processed() {
		logger.Info("Already processed, skipping")
		return
	}
	if !domain.IsImageContent(path) {
		logger.Warn("Content is not an image, skipping")
		return
	}

	location, geoFound := t.resolveLocation(ctx, file)
	if t.dryRun {
		logger.Info("Resolved location (dry run)", zap.String("location", location), zap.Bool("geo", geoFound))
		return
	}
	// The comment must be durably written before the rename: a crash in
	// between leaves an annotated but unrenamed file, which a later run
	// simply redoes.
	if err := t.comments.Append(file.Path, location); err != nil {
		logger.Error("Failed to write embedded comment", zap.Error(err))
		return
	}
	newPath, err := Finalize(file, location)
	if err != nil {
		logger.Error("Rename failed", zap.Error(err))
		return
	}
	if geoFound {
		logger.Info("Renamed", zap.String("to", filepath.Base(newPath)))
	} else {
		logger.Warn("No geo location acquired, used closest meaningful parent folder name",
			zap.String("to", filepath.Base(newPath)))
	}
}

// Run walks the root directory depth-first in lexical order and processes
// every supported image file, fanning out to the given number of workers.
// The catalog index must be fully built before Run is called; it is read
// only from here on, and the remaining shared collaborators (geocoder
// cache, comment writer) synchronize internally.
func (t *Tagger) Run(ctx context.Context, root string, workers int) error {
	logger, ctx := logging.SubFrom(ctx, "walk")
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !domain.IsSupportedExtension(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}
	logger.Info("Collected candidate files", zap.Int("count", len(paths)))

	if workers < 2 {
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			t.ProcessFile(ctx, p)
		}
		return nil
	}

	pathCh := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range pathCh {
				t.ProcessFile(ctx, p)
			}
		}()
	}
	for _, p := range paths {
		select {
		case pathCh <- p:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(pathCh)
	wg.Wait()
	return ctx.Err()
}

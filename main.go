package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/marty-cz/human-readable-geo-position-in-photo/config"
	"github.com/marty-cz/human-readable-geo-position-in-photo/flickr"
	"github.com/marty-cz/human-readable-geo-position-in-photo/geocoding"
	"github.com/marty-cz/human-readable-geo-position-in-photo/geocoding/positionstack"
	"github.com/marty-cz/human-readable-geo-position-in-photo/logging"
	"github.com/marty-cz/human-readable-geo-position-in-photo/tagger"

	"go.uber.org/zap"
)

var (
	photosDir string
	dryRun    bool
	workers   int
	geoview   string

	logger *zap.Logger
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <photosdir>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.BoolVar(&dryRun, "n", false, "Resolve locations but do not modify any file")
	flag.IntVar(&workers, "w", 1, "Number of files to process in parallel")
	flag.StringVar(&geoview, "geoview", "", "Write an SVG rendering of the geo cache to this file")
	flag.Parse()
	photosDir = flag.Arg(0)
	if photosDir == "" {
		flag.Usage()
		os.Exit(1)
	}
	logger = logging.From(context.Background())
}

func main() {
	ctx := logging.Context(context.Background(), logger)

	conf, err := config.Load()
	if err != nil {
		logger.Fatal("Bad configuration", zap.Error(err))
	}

	client := flickr.NewClient(conf.FlickrAPIKey, conf.FlickrAPISecret, conf.FlickrUserID)
	index, err := flickr.BuildIndex(ctx, client)
	if err != nil {
		logger.Fatal("Could not build photo catalog", zap.Error(err))
	}
	logger.Info("Photo catalog ready", zap.Int("titles", index.Titles()))

	var resolver geocoding.Resolver
	if conf.PositionStackAPIKey != "" {
		resolver = positionstack.NewResolver(conf.PositionStackAPIKey)
	} else {
		logger.Info("No positionstack API key, falling back to OpenStreetMap")
		resolver = geocoding.NewOSMResolver()
	}
	cache := geocoding.NewGeoCache(resolver)

	var comments tagger.CommentWriter
	if !dryRun {
		exifComments, err := tagger.NewExifComments()
		if err != nil {
			logger.Fatal("Could not start exiftool", zap.Error(err))
		}
		defer exifComments.Close()
		comments = exifComments
	}

	t := tagger.New(index, client, cache, comments, tagger.Options{DryRun: dryRun})
	if err := t.Run(ctx, photosDir, workers); err != nil {
		logger.Fatal("Processing aborted", zap.Error(err))
	}

	stats := cache.DumpStats()
	logger.Info("Geo cache statistics",
		zap.Int("hits", stats.Hits),
		zap.Int("misses", stats.Misses),
		zap.Int("total", stats.Total))
	if geoview != "" {
		writeGeoView(cache)
	}
}

func writeGeoView(cache *geocoding.Cache) {
	out, err := os.Create(geoview)
	if err != nil {
		logger.Error("Could not create geo view file", zap.String("file", geoview), zap.Error(err))
		return
	}
	defer out.Close()
	cache.Visit(geocoding.NewGeoView(out))
}

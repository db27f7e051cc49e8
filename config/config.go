// Package config loads API credentials from the environment, optionally
// seeded from a .env file in the working directory.
package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	FlickrAPIKey        string
	FlickrAPISecret     string
	FlickrUserID        string
	PositionStackAPIKey string
}

var ErrMissingFlickrCredentials = errors.New("FLICKR_API_KEY and FLICKR_USER_ID must be set")

// Load reads the configuration from the environment. A missing .env file is
// not an error, missing Flickr credentials are: without them the catalog
// index cannot be built at all.
func Load() (Config, error) {
	_ = godotenv.Load()
	cfg := Config{
		FlickrAPIKey:        os.Getenv("FLICKR_API_KEY"),
		FlickrAPISecret:     os.Getenv("FLICKR_API_SECRET"),
		FlickrUserID:        os.Getenv("FLICKR_USER_ID"),
		PositionStackAPIKey: os.Getenv("POSITIONSTACK_API_KEY"),
	}
	if cfg.FlickrAPIKey == "" || cfg.FlickrUserID == "" {
		return cfg, ErrMissingFlickrCredentials
	}
	return cfg, nil
}

package tagger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain"
	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
	"github.com/marty-cz/human-readable-geo-position-in-photo/flickr"

	"github.com/stretchr/testify/assert"
)

func TestFallbackName(t *testing.T) {
	data := []struct {
		path string
		name string
	}{
		{filepath.Join("photos", "Trips", "DSC001.jpg"), "Trips"},
		{filepath.Join("photos", "Trips", "2022-03-19", "DSC001.jpg"), "Trips"},
		{filepath.Join("photos", "2022-03-19", "Trips", "DSC001.jpg"), "Trips"},
		{filepath.Join("2022-03-19", "DSC001.jpg"), fallbackUnknown},
		{"DSC001.jpg", fallbackUnknown},
	}
	for _, d := range data {
		assert.Equal(t, d.name, FallbackName(domain.NewImageFile(d.path)), d.path)
	}
}

type fakeCatalog map[string][]flickr.CaptureRecord

func (f fakeCatalog) Lookup(title string) ([]flickr.CaptureRecord, bool) {
	records, found := f[title]
	return records, found
}

type fakeLocator struct {
	address *gps.Address
	err     error
	calls   int
}

func (f *fakeLocator) PhotoLocation(id string) (*gps.Address, error) {
	f.calls++
	return f.address, f.err
}

type fakeGeocoder struct {
	address *gps.Address
	found   bool
	err     error
	calls   int
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, lat, long float64) (*gps.Address, bool, error) {
	f.calls++
	return f.address, f.found, f.err
}

func staticMeta(meta *domain.MediaMetaData) func(string) (*domain.MediaMetaData, error) {
	return func(string) (*domain.MediaMetaData, error) { return meta, nil }
}

func TestResolveLocationFromCatalog(t *testing.T) {
	taken := time.Date(2022, time.March, 19, 10, 0, 0, 0, time.UTC)
	locator := &fakeLocator{address: &gps.Address{City: "Prague", Region: "Prague", Country: "Czechia"}}
	geocoder := &fakeGeocoder{}
	tagger := New(
		fakeCatalog{"DSC001": {{ID: "42", Title: "DSC001", DateTaken: taken}}},
		locator, geocoder, nil, Options{})
	tagger.readMeta = staticMeta(&domain.MediaMetaData{DateTaken: taken})

	location, geo := tagger.resolveLocation(context.Background(), domain.NewImageFile("Trips/DSC001.jpg"))
	assert.True(t, geo)
	assert.Equal(t, "Prague::Prague::Czechia", location)
	assert.Equal(t, 1, locator.calls)
	assert.Zero(t, geocoder.calls, "catalog hit must short-circuit the GPS tier")
}

func TestResolveLocationFallsBackToGPS(t *testing.T) {
	locator := &fakeLocator{err: errors.New("service unavailable")}
	geocoder := &fakeGeocoder{address: &gps.Address{City: "Vienna", Region: "Wien", Country: "Austria"}, found: true}
	taken := time.Date(2022, time.March, 19, 10, 0, 0, 0, time.UTC)
	tagger := New(
		fakeCatalog{"DSC001": {{ID: "42", Title: "DSC001", DateTaken: taken}}},
		locator, geocoder, nil, Options{})
	tagger.readMeta = staticMeta(&domain.MediaMetaData{
		DateTaken: taken,
		Location:  gps.NewCoordinates(48.2, 16.3),
	})

	location, geo := tagger.resolveLocation(context.Background(), domain.NewImageFile("Trips/DSC001.jpg"))
	assert.True(t, geo)
	assert.Equal(t, "Vienna::Wien::Austria", location)
	assert.Equal(t, 1, geocoder.calls)
}

func TestResolveLocationFoldsAccents(t *testing.T) {
	geocoder := &fakeGeocoder{address: &gps.Address{City: "Hlavní město Praha", Region: "Praha", Country: "Czechia"}, found: true}
	tagger := New(fakeCatalog{}, &fakeLocator{}, geocoder, nil, Options{})
	tagger.readMeta = staticMeta(&domain.MediaMetaData{Location: gps.NewCoordinates(50.1, 14.4)})

	location, geo := tagger.resolveLocation(context.Background(), domain.NewImageFile("Trips/DSC001.jpg"))
	assert.True(t, geo)
	assert.Equal(t, "Hlavni mesto Praha::Praha::Czechia", location)
}

func TestResolveLocationFolderFallback(t *testing.T) {
	geocoder := &fakeGeocoder{}
	tagger := New(fakeCatalog{}, &fakeLocator{}, geocoder, nil, Options{})
	tagger.readMeta = staticMeta(&domain.MediaMetaData{})

	location, geo := tagger.resolveLocation(context.Background(),
		domain.NewImageFile(filepath.Join("photos", "2022-03-19", "Trips", "DSC001.jpg")))
	assert.False(t, geo)
	assert.Equal(t, "Trips", location)
	assert.Zero(t, geocoder.calls, "no coordinates means no reverse geocoding")
}

func TestResolveLocationGeocoderErrorFallsThrough(t *testing.T) {
	geocoder := &fakeGeocoder{err: errors.New("quota exceeded")}
	tagger := New(fakeCatalog{}, &fakeLocator{}, geocoder, nil, Options{})
	tagger.readMeta = staticMeta(&domain.MediaMetaData{Location: gps.NewCoordinates(50.1, 14.4)})

	location, geo := tagger.resolveLocation(context.Background(), domain.NewImageFile("Trips/DSC001.jpg"))
	assert.False(t, geo)
	assert.Equal(t, "Trips", location)
}

func TestResolveLocationUsesCatalogCoordinates(t *testing.T) {
	taken := time.Date(2022, time.March, 19, 10, 0, 0, 0, time.UTC)
	locator := &fakeLocator{err: errors.New("photo has no location information")}
	geocoder := &fakeGeocoder{address: &gps.Address{City: "Prague", Region: "Prague", Country: "Czechia"}, found: true}
	tagger := New(
		fakeCatalog{"DSC001": {{ID: "42", Title: "DSC001", DateTaken: taken, Coords: gps.NewCoordinates(50.0875, 14.4213)}}},
		locator, geocoder, nil, Options{})
	// file itself carries no GPS, the catalog record's coordinates must be used
	tagger.readMeta = staticMeta(&domain.MediaMetaData{DateTaken: taken})

	location, geo := tagger.resolveLocation(context.Background(), domain.NewImageFile("Trips/DSC001.jpg"))
	assert.True(t, geo)
	assert.Equal(t, "Prague::Prague::Czechia", location)
	assert.Equal(t, 1, locator.calls)
	assert.Equal(t, 1, geocoder.calls)
}

func TestResolveLocationOutsideDateTolerance(t *testing.T) {
	locator := &fakeLocator{address: &gps.Address{City: "Prague", Region: "Prague", Country: "Czechia"}}
	catalogDate := time.Date(2022, time.March, 10, 10, 0, 0, 0, time.UTC)
	tagger := New(
		fakeCatalog{"DSC001": {{ID: "42", Title: "DSC001", DateTaken: catalogDate}}},
		locator, &fakeGeocoder{}, nil, Options{})
	tagger.readMeta = staticMeta(&domain.MediaMetaData{
		DateTaken: catalogDate.AddDate(0, 0, 5),
	})

	location, geo := tagger.resolveLocation(context.Background(), domain.NewImageFile("Trips/DSC001.jpg"))
	assert.False(t, geo)
	assert.Equal(t, "Trips", location)
	assert.Zero(t, locator.calls)
}

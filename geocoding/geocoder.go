// Package geocoding resolves GPS coordinates into place descriptions.
package geocoding

import (
	"context"
	"errors"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
)

var ErrUnknownLocation = errors.New("unknown GPS location")

// Resolver maps a coordinate to a place description. The boolean result is
// false when the provider has no answer for the coordinate, which is not an
// error.
type Resolver interface {
	ReverseGeocode(ctx context.Context, lat, long float64) (*gps.Address, bool, error)
}

type osmResolver struct {
	resolver geo.Geocoder
}

// NewOSMResolver reverse-geocodes through OpenStreetMap Nominatim. It is the
// keyless fallback used when no PositionStack credentials are configured.
func NewOSMResolver() Resolver {
	return &osmResolver{resolver: openstreetmap.Geocoder()}
}

func (o *osmResolver) ReverseGeocode(ctx context.Context, lat, long float64) (*gps.Address, bool, error) {
	address, err := o.resolver.ReverseGeocode(lat, long)
	if err != nil {
		return nil, false, err
	}
	if address == nil {
		return nil, false, nil
	}
	city := address.City
	if city == "" {
		city = address.County
	}
	return &gps.Address{
		City:    city,
		Region:  address.State,
		Country: address.Country,
	}, true, nil
}

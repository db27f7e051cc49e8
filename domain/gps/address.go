package gps

import "fmt"

// Address is the place description of a geographical location, as produced
// by reverse geocoding or by a photo provider's location lookup. Both paths
// yield this same shape so downstream code does not care where it came from.
type Address struct {
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// Canonical returns a copy of this address with the country name rewritten
// to its current political name if it is a known historical alias.
func (a Address) Canonical() Address {
	a.Country = CanonicalCountry(a.Country)
	return a
}

// String renders this address in the canonical location-string form used in
// filenames and embedded comments.
func (a Address) String() string {
	return fmt.Sprintf("%s::%s::%s", a.City, a.Region, a.Country)
}

package gps

import "fmt"

type Coordinates struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

func NewCoordinates(lat, long float64) *Coordinates {
	return &Coordinates{Lat: lat, Long: long}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("[%f;%f]", c.Lat, c.Long)
}

// IsValid reports whether these coordinates carry actual position data.
// Both values at exactly zero is how providers encode "no geo information".
func (c *Coordinates) IsValid() bool {
	return c != nil && (c.Lat != 0 || c.Long != 0)
}

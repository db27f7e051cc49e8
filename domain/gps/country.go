package gps

import "strings"

// countryAliases maps historical or regional country names (lowercase) to
// their current political names. Geocoders occasionally return the former,
// TIFF metadata from old scans almost always does.
var countryAliases = map[string]string{
	"bohemia": "Czechia",
}

// CanonicalCountry rewrites a known historical country name to its current
// one. Unknown names pass through unchanged.
func CanonicalCountry(name string) string {
	if canonical, found := countryAliases[strings.ToLower(name)]; found {
		return canonical
	}
	return name
}

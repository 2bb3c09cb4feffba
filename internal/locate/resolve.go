// Package locate normalizes inconsistent upstream geocoding vocabularies
// into one administrative location. All functions are pure.
package locate

import (
	"github.com/climatrack/climatrack/internal/observation"
	"github.com/climatrack/climatrack/internal/upstream"
)

const (
	defaultCountry = "India"
	defaultState   = "Unknown"
)

// Place is the intermediate resolved location before it is shaped into
// the persisted hierarchy.
type Place struct {
	Country string
	State   string
	City    string
	Area    string
}

// FirstNonEmpty returns the first non-empty candidate, or "".
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// PlaceFromAddress extracts a Place from a reverse-geocode address block.
// Responses use different field names across regions, so each component
// is resolved through an ordered fallback chain.
func PlaceFromAddress(a upstream.NominatimAddress) Place {
	return Place{
		Country: a.Country,
		State:   FirstNonEmpty(a.State, a.StateDistrict),
		City:    FirstNonEmpty(a.City, a.Town, a.Municipality, a.County),
		Area:    FirstNonEmpty(a.Suburb, a.Neighbourhood, a.Village),
	}
}

// NormalizeIndia keeps the city as the state name for Indian
// union-territory capitals (Delhi, Chandigarh), where the resolved city
// and state coincide and clearing the city would leave an empty label.
func NormalizeIndia(p Place) Place {
	if p.Country == defaultCountry && p.City == p.State {
		p.City = p.State
	}
	return p
}

// Resolve builds the persisted location hierarchy from a reverse-geocode
// address and the weather payload. The country code and the city identity
// come from the weather reading; administrative names missing upstream
// fall back to the defaults.
func Resolve(addr upstream.NominatimAddress, w *upstream.WeatherPayload) observation.Location {
	place := NormalizeIndia(PlaceFromAddress(addr))

	return observation.Location{
		Country: observation.CountryRef{
			Code: w.Sys.Country,
			Name: FirstNonEmpty(place.Country, defaultCountry),
		},
		State: observation.StateRef{
			Name: FirstNonEmpty(place.State, defaultState),
		},
		City: observation.CityRef{
			ID:   w.ID,
			Name: w.Name,
		},
	}
}

package ingest

import (
	"errors"

	"github.com/climatrack/climatrack/internal/observation"
	"github.com/climatrack/climatrack/internal/upstream"
)

var (
	errNoCoord     = errors.New("weather payload missing coord block")
	errNoMain      = errors.New("weather payload missing main block")
	errNoPollution = errors.New("pollution payload has no readings")
)

// buildObservation assembles the canonical pre-persistence record from
// the upstream payloads and the resolved location. Missing required
// nested fields are a structural mismatch, not something to default:
// only resolver-sourced administrative names ever get defaults.
func buildObservation(w *upstream.WeatherPayload, p *upstream.PollutionPayload, loc observation.Location) (*observation.Observation, error) {
	if w.Coord == nil {
		return nil, errNoCoord
	}
	if w.Main == nil {
		return nil, errNoMain
	}
	if len(p.List) == 0 {
		return nil, errNoPollution
	}

	// The first list entry is the canonical pollution snapshot for the
	// timestamp of the fetch.
	reading := p.List[0]

	return &observation.Observation{
		Location:    loc,
		Coord:       *w.Coord,
		Weather:     w.Weather,
		MainWeather: *w.Main,
		Wind:        w.Wind,
		Clouds:      w.Clouds,
		Visibility:  w.Visibility,
		Base:        w.Base,
		Sys:         w.Sys,
		Timezone:    w.Timezone,
		Dt:          w.Dt,
		Cod:         w.Cod,
		Pollution: observation.Pollution{
			AQI:        reading.Main.AQI,
			Components: reading.Components,
			Dt:         reading.Dt,
		},
	}, nil
}

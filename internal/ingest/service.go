package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/climatrack/climatrack/internal/locate"
	"github.com/climatrack/climatrack/internal/observation"
	"github.com/climatrack/climatrack/internal/upstream"
)

// Fetcher abstracts the three upstream lookups of the pipeline.
type Fetcher interface {
	CurrentByCity(ctx context.Context, city string) (*upstream.WeatherPayload, error)
	PollutionByCoord(ctx context.Context, lat, lon float64) (*upstream.PollutionPayload, error)
	ReverseAddress(ctx context.Context, lat, lon float64) (*upstream.NominatimAddress, error)
}

// FetchResult carries the raw upstream payloads returned to on-demand
// callers. The normalized record is persisted as a side effect and is
// not part of the response.
type FetchResult struct {
	Weather   *upstream.WeatherPayload   `json:"weather"`
	Pollution *upstream.PollutionPayload `json:"pollution"`
}

// CityResult records the outcome of one city's pipeline run in a batch.
type CityResult struct {
	City          string
	ObservationID string
	Err           error
}

// BatchReport collects per-city outcomes of a batch run.
type BatchReport struct {
	Results []CityResult
}

// Succeeded returns the number of cities that persisted an Observation.
func (r BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of cities whose pipeline run failed.
func (r BatchReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Service drives the fetch, resolve, normalize, persist pipeline.
type Service struct {
	store   observation.Store
	fetcher Fetcher
}

// NewService creates a Service over the given store and fetcher.
func NewService(store observation.Store, fetcher Fetcher) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
	}
}

// ingestOne runs the full pipeline for one city. The pollution and
// reverse-geocode calls are only issued once the weather lookup has
// yielded coordinates; any stage failure aborts with no partial record.
func (s *Service) ingestOne(ctx context.Context, city string) (*FetchResult, observation.Observation, error) {
	w, err := s.fetcher.CurrentByCity(ctx, city)
	if err != nil {
		return nil, observation.Observation{}, fmt.Errorf("weather lookup: %w", err)
	}
	if w.Coord == nil {
		return nil, observation.Observation{}, errNoCoord
	}

	p, err := s.fetcher.PollutionByCoord(ctx, w.Coord.Lat, w.Coord.Lon)
	if err != nil {
		return nil, observation.Observation{}, fmt.Errorf("pollution lookup: %w", err)
	}

	addr, err := s.fetcher.ReverseAddress(ctx, w.Coord.Lat, w.Coord.Lon)
	if err != nil {
		return nil, observation.Observation{}, fmt.Errorf("geo lookup: %w", err)
	}

	loc := locate.Resolve(*addr, w)

	obs, err := buildObservation(w, p, loc)
	if err != nil {
		return nil, observation.Observation{}, fmt.Errorf("normalize %q: %w", city, err)
	}

	stored := s.store.Create(*obs)
	return &FetchResult{Weather: w, Pollution: p}, stored, nil
}

// IngestCity runs the pipeline once for an on-demand request. Any stage
// failure aborts the whole request; on success the raw upstream payloads
// are returned and the normalized record has been persisted.
func (s *Service) IngestCity(ctx context.Context, city string) (*FetchResult, error) {
	result, _, err := s.ingestOne(ctx, city)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IngestBatch runs the pipeline for each roster city in order. A city's
// failure is recorded and logged, then the loop moves on: one upstream
// outage must never abort ingestion for the remaining cities.
func (s *Service) IngestBatch(ctx context.Context, cities []string) BatchReport {
	report := BatchReport{Results: make([]CityResult, 0, len(cities))}

	for _, city := range cities {
		res := CityResult{City: city}

		_, stored, err := s.ingestOne(ctx, city)
		if err != nil {
			res.Err = err
			log.Printf("ingest: batch fetch failed for %s: %v", city, err)
		} else {
			res.ObservationID = stored.ID
		}

		report.Results = append(report.Results, res)
	}

	return report
}

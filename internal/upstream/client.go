package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const (
	defaultWeatherURL   = "https://api.openweathermap.org/data/2.5/weather"
	defaultPollutionURL = "https://api.openweathermap.org/data/2.5/air_pollution"
	defaultNominatimURL = "https://nominatim.openstreetmap.org/reverse"

	// Nominatim's usage policy requires an identifying User-Agent.
	nominatimUserAgent = "climatrack/1.0 (ops@climatrack.dev)"
)

var (
	// ErrMissingAPIKey is returned when a credentialed call is attempted
	// without the shared upstream credential.
	ErrMissingAPIKey = errors.New("upstream api key is not configured")

	errUnexpectedStatus = errors.New("unexpected status code")
	errCircuitOpen      = errors.New("circuit breaker open")
)

// Config carries the upstream endpoints and credential. It is built once
// at startup and passed into NewClient; zero-value URL fields fall back
// to the production endpoints.
type Config struct {
	APIKey       string
	WeatherURL   string
	PollutionURL string
	NominatimURL string
	HTTPClient   *http.Client
}

// Client issues the outbound calls of the ingestion pipeline. Each
// upstream host sits behind its own circuit breaker; calls are
// single-shot and never retried.
type Client struct {
	apiKey       string
	weatherURL   string
	pollutionURL string
	nominatimURL string
	http         *http.Client

	weatherCircuit *gobreaker.CircuitBreaker
	geoCircuit     *gobreaker.CircuitBreaker
}

// NewClient creates a Client from cfg, applying endpoint defaults.
func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:       cfg.APIKey,
		weatherURL:   cfg.WeatherURL,
		pollutionURL: cfg.PollutionURL,
		nominatimURL: cfg.NominatimURL,
		http:         cfg.HTTPClient,

		weatherCircuit: newCircuit("openweather"),
		geoCircuit:     newCircuit("nominatim"),
	}
	if c.weatherURL == "" {
		c.weatherURL = defaultWeatherURL
	}
	if c.pollutionURL == "" {
		c.pollutionURL = defaultPollutionURL
	}
	if c.nominatimURL == "" {
		c.nominatimURL = defaultNominatimURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 10 * time.Second}
	}
	return c
}

func newCircuit(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// get executes a single GET through the circuit breaker and returns the
// body of a 2xx response. Non-2xx statuses and transport errors fail the
// call outright.
func (c *Client) get(ctx context.Context, cb *gobreaker.CircuitBreaker, u string, header http.Header) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpectedStatus, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp.Body, nil
}

// getJSON performs a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, cb *gobreaker.CircuitBreaker, u string, header http.Header, out any) error {
	body, err := c.get(ctx, cb, u, header)
	if err != nil {
		return err
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream body: %w", err)
	}
	return nil
}

package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// CurrentByCity fetches the current weather reading for a city name.
// Temperatures are requested in metric units.
func (c *Client) CurrentByCity(ctx context.Context, city string) (*WeatherPayload, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	var payload WeatherPayload
	if err := c.getJSON(ctx, c.weatherCircuit, c.weatherURL+"?"+values.Encode(), nil, &payload); err != nil {
		return nil, fmt.Errorf("current weather for %q: %w", city, err)
	}
	return &payload, nil
}

// PollutionByCoord fetches the air-pollution reading list for a coordinate.
func (c *Client) PollutionByCoord(ctx context.Context, lat, lon float64) (*PollutionPayload, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", c.apiKey)

	var payload PollutionPayload
	if err := c.getJSON(ctx, c.weatherCircuit, c.pollutionURL+"?"+values.Encode(), nil, &payload); err != nil {
		return nil, fmt.Errorf("air pollution at %f,%f: %w", lat, lon, err)
	}
	return &payload, nil
}

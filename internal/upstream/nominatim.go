package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// ReverseAddress performs the richer reverse-geocode lookup and returns
// the address block for the resolver's fallback chains.
func (c *Client) ReverseAddress(ctx context.Context, lat, lon float64) (*NominatimAddress, error) {
	values := url.Values{}
	values.Set("format", "json")
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("zoom", "18")
	values.Set("addressdetails", "1")

	header := http.Header{}
	header.Set("User-Agent", nominatimUserAgent)

	var payload reverseResponse
	if err := c.getJSON(ctx, c.geoCircuit, c.nominatimURL+"?"+values.Encode(), header, &payload); err != nil {
		return nil, fmt.Errorf("reverse geocode at %f,%f: %w", lat, lon, err)
	}
	return &payload.Address, nil
}

// ReverseRaw performs the simple reverse-geocode lookup and returns the
// upstream JSON body untouched, for the passthrough endpoint.
func (c *Client) ReverseRaw(ctx context.Context, lat, lon string) ([]byte, error) {
	values := url.Values{}
	values.Set("lat", lat)
	values.Set("lon", lon)
	values.Set("format", "json")

	header := http.Header{}
	header.Set("User-Agent", nominatimUserAgent)

	body, err := c.get(ctx, c.geoCircuit, c.nominatimURL+"?"+values.Encode(), header)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode passthrough: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode passthrough: %w", err)
	}
	return raw, nil
}

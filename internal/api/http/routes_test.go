package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/climatrack/climatrack/internal/config"
	"github.com/climatrack/climatrack/internal/ingest"
	"github.com/climatrack/climatrack/internal/store"
	"github.com/climatrack/climatrack/internal/upstream"
)

const mumbaiWeatherBody = `{
	"coord": {"lon": 72.8479, "lat": 19.0144},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04d"}],
	"base": "stations",
	"main": {"temp": 29.5, "feels_like": 33.2, "temp_min": 28.9, "temp_max": 30.1, "pressure": 1008, "humidity": 70},
	"visibility": 8000,
	"wind": {"speed": 4.1, "deg": 260},
	"clouds": {"all": 75},
	"dt": 1756700000,
	"sys": {"country": "IN", "sunrise": 1756685000, "sunset": 1756729000},
	"timezone": 19800,
	"id": 1275339,
	"name": "Mumbai",
	"cod": 200
}`

const pollutionBody = `{
	"coord": {"lon": 72.8479, "lat": 19.0144},
	"list": [{
		"main": {"aqi": 3},
		"components": {"co": 230.3, "no": 0.1, "no2": 12.4, "o3": 60.8, "so2": 8.2, "pm2_5": 35.5, "pm10": 48.7, "nh3": 4.1},
		"dt": 1756700000
	}]
}`

const reverseBody = `{
	"display_name": "Mumbai, Maharashtra, India",
	"address": {"city": "Mumbai", "state": "Maharashtra", "country": "India", "suburb": "Colaba"}
}`

// newUpstreamStub serves canned weather, pollution and reverse-geocode
// responses; any city other than Mumbai gets a not-found status.
func newUpstreamStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "Mumbai" {
			http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
			return
		}
		io.WriteString(w, mumbaiWeatherBody)
	})
	mux.HandleFunc("/air_pollution", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, pollutionBody)
	})
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, reverseBody)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func newTestApp(t *testing.T, apiKey string) (*fiber.App, *store.MemoryStore) {
	t.Helper()

	ts := newUpstreamStub(t)
	client := upstream.NewClient(upstream.Config{
		APIKey:       apiKey,
		WeatherURL:   ts.URL + "/weather",
		PollutionURL: ts.URL + "/air_pollution",
		NominatimURL: ts.URL + "/reverse",
	})

	memStore := store.NewMemoryStore()
	svc := ingest.NewService(memStore, client)

	app := fiber.New()
	RegisterRoutes(app, &config.AppConfig{APIKey: apiKey}, svc, client, memStore)
	return app, memStore
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestOnDemandIngestSuccess(t *testing.T) {
	app, memStore := newTestApp(t, "test-key")

	req := httptest.NewRequest(http.MethodGet, "/weather/Mumbai", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body := decodeBody(t, resp)
	weather, ok := body["weather"].(map[string]any)
	if !ok {
		t.Fatalf("response missing weather payload: %v", body)
	}
	if weather["name"] != "Mumbai" {
		t.Fatalf("expected weather.name Mumbai, got %v", weather["name"])
	}
	if _, ok := body["pollution"].(map[string]any); !ok {
		t.Fatalf("response missing pollution payload: %v", body)
	}

	all := memStore.FindAll()
	if len(all) != 1 {
		t.Fatalf("expected exactly one persisted observation, got %d", len(all))
	}
	if got := all[0].Location.City.Name; got != "Mumbai" {
		t.Fatalf("expected persisted city Mumbai, got %q", got)
	}
	if got := all[0].Location.State.Name; got != "Maharashtra" {
		t.Fatalf("expected persisted state Maharashtra, got %q", got)
	}
}

func TestOnDemandIngestUpstreamFailure(t *testing.T) {
	app, memStore := newTestApp(t, "test-key")

	req := httptest.NewRequest(http.MethodGet, "/weather/Nowhere123", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Weather fetch failed" {
		t.Fatalf("expected fixed error payload, got %v", body)
	}
	if len(memStore.FindAll()) != 0 {
		t.Fatal("no observation may be persisted on a failed fetch")
	}
}

func TestOnDemandIngestMissingCredential(t *testing.T) {
	app, memStore := newTestApp(t, "")

	req := httptest.NewRequest(http.MethodGet, "/weather/Mumbai", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "Server missing OPENWEATHER_API_KEY" {
		t.Fatalf("expected credential error payload, got %v", body)
	}
	if len(memStore.FindAll()) != 0 {
		t.Fatal("no observation may be persisted without a credential")
	}
}

func TestReverseGeocodePassthrough(t *testing.T) {
	app, _ := newTestApp(t, "test-key")

	req := httptest.NewRequest(http.MethodGet, "/reverse-geocode?lat=19.0144&lon=72.8479", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(raw) != reverseBody {
		t.Fatalf("passthrough must return the upstream body untouched, got %s", raw)
	}
}

func TestDownloadCSVEmptyStore(t *testing.T) {
	app, _ := newTestApp(t, "test-key")

	req := httptest.NewRequest(http.MethodGet, "/download-csv", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}

	body := decodeBody(t, resp)
	if body["error"] != "No data found" {
		t.Fatalf("expected no-data error payload, got %v", body)
	}
}

func TestDownloadCSVAfterIngest(t *testing.T) {
	app, _ := newTestApp(t, "test-key")

	ingestReq := httptest.NewRequest(http.MethodGet, "/weather/Mumbai", nil)
	if _, err := app.Test(ingestReq, -1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/download-csv", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected text/csv content type, got %q", ct)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(cd, "weather_data.csv") {
		t.Fatalf("expected attachment filename, got %q", cd)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "Mumbai") {
		t.Fatalf("expected exported row for Mumbai, got %q", lines[1])
	}
}

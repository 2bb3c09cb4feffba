package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultRoster is the fixed, ordered list of cities the scheduled batch
// processes when no roster file is configured.
var defaultRoster = []string{
	"Delhi",
	"Kolkata",
	"Mumbai",
	"Chennai",
	"Bengaluru",
	"Hyderabad",
	"Ahmedabad",
	"Jaipur",
	"Lucknow",
	"Patna",
	"Bhopal",
	"Ranchi",
	"Guwahati",
	"Bhubaneswar",
	"Chandigarh",
	"Shimla",
	"Dehradun",
	"Panaji",
}

// defaultOrigins are always allowed, on top of any configured list.
var defaultOrigins = []string{
	"http://localhost:5173",
}

// AppConfig is built once at startup and passed by reference into the
// components that need it; nothing reads ambient process state at call
// time.
type AppConfig struct {
	// APIKey is the single shared credential for the weather and
	// pollution upstreams.
	APIKey string

	// Roster is the ordered city list for scheduled batch ingestion.
	Roster []string

	// ScheduleCron is the wall-clock cron expression of the batch job.
	ScheduleCron string

	// AllowedOrigins for CORS.
	AllowedOrigins []string

	// HTTPTimeout bounds each outbound upstream call.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.APIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.APIKey == "" {
		log.Printf("WARN: OPENWEATHER_API_KEY is not set; ingestion will fail until it is configured")
	}

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.ScheduleCron = getenvDefault("SCHEDULE_CRON", "0 */12 * * *")
	cfg.Port = getenvDefault("PORT", "8000")

	cfg.AllowedOrigins = loadOrigins(os.Getenv("CORS_ORIGIN"))

	roster, err := loadRoster(os.Getenv("ROSTER_FILE"))
	if err != nil {
		return nil, err
	}
	cfg.Roster = roster

	return cfg, nil
}

// loadRoster reads the city roster from a YAML file, falling back to the
// built-in list when no file is configured.
func loadRoster(path string) ([]string, error) {
	if path == "" {
		return defaultRoster, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var doc struct {
		Cities []string `yaml:"cities"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	if len(doc.Cities) == 0 {
		return nil, fmt.Errorf("roster file %s lists no cities", path)
	}

	return doc.Cities, nil
}

func loadOrigins(raw string) []string {
	origins := append([]string{}, defaultOrigins...)
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

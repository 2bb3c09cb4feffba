package upstream

import "github.com/climatrack/climatrack/internal/observation"

// WeatherPayload is the current-weather-by-name response. Coord and Main
// are pointers so a structurally incomplete body stays detectable; the
// on-demand endpoint echoes this payload back to the caller verbatim.
type WeatherPayload struct {
	Coord      *observation.Coord       `json:"coord"`
	Weather    []observation.Condition  `json:"weather"`
	Base       string                   `json:"base"`
	Main       *observation.MainWeather `json:"main"`
	Visibility int                      `json:"visibility"`
	Wind       observation.Wind         `json:"wind"`
	Clouds     observation.Clouds       `json:"clouds"`
	Dt         int64                    `json:"dt"`
	Sys        observation.Sys          `json:"sys"`
	Timezone   int                      `json:"timezone"`
	ID         int64                    `json:"id"`
	Name       string                   `json:"name"`
	Cod        int                      `json:"cod"`
}

// PollutionEntry is one reading of the air-pollution response list.
type PollutionEntry struct {
	Main struct {
		AQI int `json:"aqi"`
	} `json:"main"`
	Components map[string]float64 `json:"components"`
	Dt         int64              `json:"dt"`
}

// PollutionPayload is the air-pollution-by-coordinates response.
type PollutionPayload struct {
	Coord *observation.Coord `json:"coord"`
	List  []PollutionEntry   `json:"list"`
}

// NominatimAddress is the address block of a reverse-geocode response.
// Field presence varies by region; the resolver's fallback chains pick
// the first populated candidate.
type NominatimAddress struct {
	Country       string `json:"country"`
	State         string `json:"state"`
	StateDistrict string `json:"state_district"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Municipality  string `json:"municipality"`
	County        string `json:"county"`
	Suburb        string `json:"suburb"`
	Neighbourhood string `json:"neighbourhood"`
	Village       string `json:"village"`
}

type reverseResponse struct {
	Address NominatimAddress `json:"address"`
}

// Package export flattens the stored observation history into CSV.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/climatrack/climatrack/internal/observation"
)

// ErrNoData is returned when there are no observations to export.
var ErrNoData = errors.New("no data found")

// columns is the fixed export layout. Order is explicit and never derived
// from record contents, so a sparse first record cannot shift columns.
var columns = []string{
	"City Name",
	"Country",
	"Latitude",
	"Longitude",
	"Weather Condition",
	"Weather Description",
	"Temperature (°C)",
	"Feels Like (°C)",
	"Min Temp (°C)",
	"Max Temp (°C)",
	"Pressure (hPa)",
	"Humidity (%)",
	"Wind Speed (m/s)",
	"Wind Direction (°)",
	"Visibility (m)",
	"Cloud Coverage (%)",
	"Air Quality Index (AQI)",
	"CO (µg/m³)",
	"NO (µg/m³)",
	"NO₂ (µg/m³)",
	"O₃ (µg/m³)",
	"SO₂ (µg/m³)",
	"PM2.5 (µg/m³)",
	"PM10 (µg/m³)",
	"NH₃ (µg/m³)",
	"Sunrise Time",
	"Sunset Time",
	"Timezone Offset",
	"Station Base",
	"Weather Code",
	"City ID",
	"Record Created At",
}

// createdAtZone renders record timestamps the way the export has always
// shown them: Indian Standard Time, day-first, 12-hour clock.
var createdAtZone = loadKolkata()

func loadKolkata() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}

// Rows flattens observations into the fixed column layout, one row per
// record. Absent fields render as the empty string.
func Rows(observations []observation.Observation) ([][]string, error) {
	if len(observations) == 0 {
		return nil, ErrNoData
	}

	rows := make([][]string, 0, len(observations))
	for _, obs := range observations {
		rows = append(rows, row(obs))
	}
	return rows, nil
}

// WriteCSV writes the header and one row per observation to w.
func WriteCSV(w io.Writer, observations []observation.Observation) error {
	rows, err := Rows(observations)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func row(obs observation.Observation) []string {
	condition, description := "", ""
	if len(obs.Weather) > 0 {
		condition = obs.Weather[0].Main
		description = obs.Weather[0].Description
	}

	return []string{
		obs.Location.City.Name,
		obs.Sys.Country,
		num(obs.Coord.Lat),
		num(obs.Coord.Lon),
		condition,
		description,
		num(obs.MainWeather.Temp),
		num(obs.MainWeather.FeelsLike),
		num(obs.MainWeather.TempMin),
		num(obs.MainWeather.TempMax),
		num(obs.MainWeather.Pressure),
		num(obs.MainWeather.Humidity),
		num(obs.Wind.Speed),
		num(obs.Wind.Deg),
		integer(int64(obs.Visibility)),
		integer(int64(obs.Clouds.All)),
		integer(int64(obs.Pollution.AQI)),
		component(obs, "co"),
		component(obs, "no"),
		component(obs, "no2"),
		component(obs, "o3"),
		component(obs, "so2"),
		component(obs, "pm2_5"),
		component(obs, "pm10"),
		component(obs, "nh3"),
		integer(obs.Sys.Sunrise),
		integer(obs.Sys.Sunset),
		integer(int64(obs.Timezone)),
		obs.Base,
		integer(int64(obs.Cod)),
		integer(obs.Location.City.ID),
		createdAt(obs.CreatedAt),
	}
}

// num renders a float, treating zero as absent.
func num(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// integer renders an integer, treating zero as absent.
func integer(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func component(obs observation.Observation, symbol string) string {
	if obs.Pollution.Components == nil {
		return ""
	}
	return num(obs.Pollution.Components[symbol])
}

func createdAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(createdAtZone).Format("02/01/2006, 03:04:05 pm")
}

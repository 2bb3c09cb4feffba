package observation

import "time"

// Coord is a geographic position as reported by the weather upstream.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one entry of the upstream weather condition list.
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MainWeather holds the raw numeric readings of the primary weather block.
type MainWeather struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
	SeaLevel  float64 `json:"sea_level,omitempty"`
	GrndLevel float64 `json:"grnd_level,omitempty"`
}

type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust,omitempty"`
}

type Clouds struct {
	All int `json:"all"`
}

// Sys is the upstream system block; semantically opaque here but carried
// verbatim for export (country code, sunrise, sunset).
type Sys struct {
	Type    int    `json:"type,omitempty"`
	ID      int    `json:"id,omitempty"`
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// Pollution is the canonical air-quality snapshot taken from the first
// entry of the pollution upstream's reading list.
type Pollution struct {
	AQI        int                `json:"aqi"`
	Components map[string]float64 `json:"components"`
	Dt         int64              `json:"dt"`
}

// CountryRef, StateRef and CityRef form the resolved administrative
// hierarchy of a Location.
type CountryRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type StateRef struct {
	Name string `json:"name"`
}

type CityRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Location is the normalized administrative hierarchy an Observation is
// filed under.
type Location struct {
	Country CountryRef `json:"country"`
	State   StateRef   `json:"state"`
	City    CityRef    `json:"city"`
}

// Observation is one persisted weather+pollution+location reading for a
// city at a point in time. Observations are immutable once created: the
// store assigns ID and CreatedAt at write time and no update or delete
// path exists.
type Observation struct {
	ID          string      `json:"id"`
	Location    Location    `json:"location"`
	Coord       Coord       `json:"coord"`
	Weather     []Condition `json:"weather"`
	MainWeather MainWeather `json:"mainWeather"`
	Wind        Wind        `json:"wind"`
	Clouds      Clouds      `json:"clouds"`
	Visibility  int         `json:"visibility"`
	Base        string      `json:"base"`
	Sys         Sys         `json:"sys"`
	Timezone    int         `json:"timezone"`
	Dt          int64       `json:"dt"`
	Cod         int         `json:"cod"`
	Pollution   Pollution   `json:"pollution"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Store is the contract the in-memory store (and any future persistent
// store) must satisfy: document-store create and find-all over the
// Observation entity.
type Store interface {
	Create(obs Observation) Observation
	FindAll() []Observation
}

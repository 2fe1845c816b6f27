package weather

import (
	"encoding/json"
	"strings"
)

// Unit is the temperature scale a report is rendered in.
type Unit string

const (
	Celsius    Unit = "c"
	Fahrenheit Unit = "f"
)

// ParseUnit lower-cases s and nothing else, so " c" stays invalid. It does
// not validate; NewQuery does.
func ParseUnit(s string) Unit {
	return Unit(strings.ToLower(s))
}

// Symbol returns the suffix printed after temperatures.
func (u Unit) Symbol() string {
	if u == Fahrenheit {
		return "°F"
	}
	return "°C"
}

// Query is a single validated lookup request.
type Query struct {
	City string `validate:"required"`
	Unit Unit   `validate:"oneof=c f"`
}

// RawResponse is what a Fetcher hands back: the status and the unparsed body.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// CurrentResponse mirrors the WeatherAPI.com /v1/current.json payload.
// Numbers stay json.Number so they print exactly as the upstream sent them.
type CurrentResponse struct {
	Location *APILocation    `json:"location"`
	Current  *APICurrent     `json:"current"`
	Error    json.RawMessage `json:"error"`
}

type APILocation struct {
	Name      string      `json:"name"`
	Region    string      `json:"region"`
	Country   string      `json:"country"`
	Lat       json.Number `json:"lat"`
	Lon       json.Number `json:"lon"`
	Localtime string      `json:"localtime"`
}

type APICurrent struct {
	TempC      json.Number `json:"temp_c"`
	TempF      json.Number `json:"temp_f"`
	FeelsLikeC json.Number `json:"feelslike_c"`
	FeelsLikeF json.Number `json:"feelslike_f"`
	Condition  *struct {
		Text string `json:"text"`
	} `json:"condition"`
	Humidity   json.Number `json:"humidity"`
	PressureMb json.Number `json:"pressure_mb"`
	WindKph    json.Number `json:"wind_kph"`
	WindDir    string      `json:"wind_dir"`
	PrecipMm   json.Number `json:"precip_mm"`
	UV         json.Number `json:"uv"`
}

// APIError is the body of {"error": {...}}. Code is a pointer so an absent
// code is distinguishable from zero.
type APIError struct {
	Code    *float64 `json:"code"`
	Message string   `json:"message"`
}

// CodeLocationNotFound is WeatherAPI's "No matching location found".
const CodeLocationNotFound = 1006

// Report is the flat, display-ready view of one successful response.
type Report struct {
	Name      string `json:"name"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	Lat       string `json:"lat"`
	Lon       string `json:"lon"`
	Localtime string `json:"localtime"`

	TempC      string `json:"temp_c"`
	TempF      string `json:"temp_f"`
	FeelsLikeC string `json:"feels_like_c"`
	FeelsLikeF string `json:"feels_like_f"`

	// Unit-selected values.
	Temp       string `json:"temp"`
	FeelsLike  string `json:"feels_like"`
	UnitSymbol string `json:"temp_unit_symbol"`

	Condition     string `json:"condition"`
	Humidity      string `json:"humidity"`
	Pressure      string `json:"pressure"`
	WindSpeed     string `json:"wind_speed"`
	WindDir       string `json:"wind_dir"`
	Precipitation string `json:"precipitation"`
	UVIndex       string `json:"uv_index"`
}

// ReportFields lists every placeholder a report template may reference.
var ReportFields = []string{
	"name", "region", "country", "lat", "lon", "localtime",
	"temp_c", "temp_f", "feels_like_c", "feels_like_f",
	"temp", "feels_like", "temp_unit_symbol",
	"condition", "humidity", "pressure", "wind_speed", "wind_dir",
	"precipitation", "uv_index",
}

// Fields returns the report keyed by placeholder name.
func (r Report) Fields() map[string]string {
	return map[string]string{
		"name":             r.Name,
		"region":           r.Region,
		"country":          r.Country,
		"lat":              r.Lat,
		"lon":              r.Lon,
		"localtime":        r.Localtime,
		"temp_c":           r.TempC,
		"temp_f":           r.TempF,
		"feels_like_c":     r.FeelsLikeC,
		"feels_like_f":     r.FeelsLikeF,
		"temp":             r.Temp,
		"feels_like":       r.FeelsLike,
		"temp_unit_symbol": r.UnitSymbol,
		"condition":        r.Condition,
		"humidity":         r.Humidity,
		"pressure":         r.Pressure,
		"wind_speed":       r.WindSpeed,
		"wind_dir":         r.WindDir,
		"precipitation":    r.Precipitation,
		"uv_index":         r.UVIndex,
	}
}

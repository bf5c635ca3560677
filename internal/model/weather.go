package model

import "time"

// Condition is the provider-independent weather condition. Every provider
// adapter maps its own codes onto this set.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partly-cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionFog          Condition = "fog"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionThunder      Condition = "thunder"
)

var conditionIcons = map[Condition]string{
	ConditionClear:        "☀",
	ConditionPartlyCloudy: "⛅",
	ConditionCloudy:       "☁",
	ConditionFog:          "🌫",
	ConditionRain:         "🌧",
	ConditionSnow:         "❄",
	ConditionThunder:      "⚡",
}

// Icon returns the glyph for c. Unknown conditions use the cloudy icon.
func (c Condition) Icon() string {
	if icon, ok := conditionIcons[c]; ok {
		return icon
	}
	return conditionIcons[ConditionCloudy]
}

// WeatherState is the state of the weather widget.
type WeatherState int

const (
	WeatherIdle WeatherState = iota
	WeatherLoading
	WeatherSuccess
	// WeatherDegraded means the primary provider failed and the report comes
	// from the secondary provider, which may describe another location.
	WeatherDegraded
	WeatherFailed
)

func (s WeatherState) String() string {
	switch s {
	case WeatherIdle:
		return "idle"
	case WeatherLoading:
		return "loading"
	case WeatherSuccess:
		return "success"
	case WeatherDegraded:
		return "degraded"
	case WeatherFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText lets the state appear by name in JSON.
func (s WeatherState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WeatherReport is a normalised current-conditions report. Fields a provider
// does not supply are left at their zero value and flagged by HasDetail.
type WeatherReport struct {
	Provider    string    `json:"provider"`
	Location    string    `json:"location"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`

	TempC      float64 `json:"tempC"`
	FeelsLikeC float64 `json:"feelsLikeC"`
	Humidity   int     `json:"humidity"`
	WindMS     float64 `json:"windMs"`
	WindDir    string  `json:"windDir"`

	// HasDetail is false for providers that only report temperature, wind
	// and humidity.
	HasDetail        bool    `json:"hasDetail"`
	PressureMb       int     `json:"pressureMb"`
	VisibilityKm     int     `json:"visibilityKm"`
	UVIndex          int     `json:"uvIndex"`
	CloudCover       int     `json:"cloudCover"`
	MaxC             float64 `json:"maxC"`
	MinC             float64 `json:"minC"`
	Sunrise          string  `json:"sunrise"`
	Sunset           string  `json:"sunset"`
	MoonPhase        string  `json:"moonPhase"`
	MoonIllumination int     `json:"moonIllumination"`

	FetchedAt time.Time `json:"fetchedAt"`
}

// WeatherSnapshot is what the weather widget renders.
type WeatherSnapshot struct {
	State      WeatherState   `json:"state"`
	Generation uint64         `json:"generation"`
	City       string         `json:"city"`
	Report     *WeatherReport `json:"report,omitempty"`

	// Notice explains a degraded report, e.g. that it describes the fallback
	// location rather than City.
	Notice string `json:"notice,omitempty"`
	Error  string `json:"error,omitempty"`
}

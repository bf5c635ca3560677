package wttr

// Response is the subset of the wttr.in `format=j1` document the dashboard
// reads. wttr.in encodes every number as a string.
type Response struct {
	CurrentCondition []CurrentCondition `json:"current_condition"`
	NearestArea      []NearestArea      `json:"nearest_area"`
	Weather          []Day              `json:"weather"`
}

// CurrentCondition is the observation block.
type CurrentCondition struct {
	TempC          string  `json:"temp_C"`
	FeelsLikeC     string  `json:"FeelsLikeC"`
	Humidity       string  `json:"humidity"`
	WindSpeedKmph  string  `json:"windspeedKmph"`
	WindDir16Point string  `json:"winddir16Point"`
	Pressure       string  `json:"pressure"`
	Visibility     string  `json:"visibility"`
	UVIndex        string  `json:"uvIndex"`
	CloudCover     string  `json:"cloudcover"`
	WeatherCode    string  `json:"weatherCode"`
	WeatherDesc    []Value `json:"weatherDesc"`
}

// NearestArea names the place wttr.in resolved the query to.
type NearestArea struct {
	AreaName []Value `json:"areaName"`
	Country  []Value `json:"country"`
}

// Day is one forecast day.
type Day struct {
	MaxTempC  string      `json:"maxtempC"`
	MinTempC  string      `json:"mintempC"`
	Astronomy []Astronomy `json:"astronomy"`
}

// Astronomy holds sun and moon data for a day.
type Astronomy struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	MoonPhase        string `json:"moon_phase"`
	MoonIllumination string `json:"moon_illumination"`
}

// Value wraps wttr.in's {"value": "..."} objects.
type Value struct {
	Value string `json:"value"`
}

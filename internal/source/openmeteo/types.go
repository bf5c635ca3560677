package openmeteo

// Response is the subset of the /v1/forecast document requested with
// current_weather=true and hourly humidity.
type Response struct {
	CurrentWeather *CurrentWeather `json:"current_weather"`
	Hourly         Hourly          `json:"hourly"`
}

// CurrentWeather is open-meteo's current observation.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         int     `json:"is_day"`
}

// Hourly holds the hourly series. Only the first humidity sample is used.
type Hourly struct {
	RelativeHumidity []float64 `json:"relativehumidity_2m"`
}

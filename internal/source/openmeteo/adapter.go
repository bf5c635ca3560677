package openmeteo

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/source"
)

// Condition maps a WMO weather interpretation code.
func Condition(code int) model.Condition {
	switch {
	case code == 0:
		return model.ConditionClear
	case code == 1 || code == 2:
		return model.ConditionPartlyCloudy
	case code == 3:
		return model.ConditionCloudy
	case code == 45 || code == 48:
		return model.ConditionFog
	case code >= 51 && code <= 67, code >= 80 && code <= 82:
		return model.ConditionRain
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return model.ConditionSnow
	case code == 95 || code == 96 || code == 99:
		return model.ConditionThunder
	default:
		return model.ConditionCloudy
	}
}

// Describe returns a short description for a WMO code.
func Describe(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code == 1 || code == 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return "Snow"
	case code == 95 || code == 96 || code == 99:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

// Adapter implements source.WeatherSource for open-meteo. open-meteo needs
// coordinates, so every request is made for the configured location.
type Adapter struct {
	client   *source.Client
	location model.Location
	now      func() time.Time
}

// NewAdapter creates an open-meteo adapter for loc.
func NewAdapter(baseURL string, loc model.Location, timeout time.Duration) *Adapter {
	return &Adapter{
		client:   source.NewClient(source.ProviderOpenMeteo, baseURL, timeout),
		location: loc,
		now:      time.Now,
	}
}

func (a *Adapter) Name() source.Provider {
	return source.ProviderOpenMeteo
}

// Location returns the fixed location this adapter reports on.
func (a *Adapter) Location() model.Location {
	return a.location
}

// Weather ignores city and reports on the configured location.
func (a *Adapter) Weather(ctx context.Context, _ string) (*model.WeatherReport, error) {
	q := url.Values{
		"latitude":        {formatCoord(a.location.Latitude)},
		"longitude":       {formatCoord(a.location.Longitude)},
		"current_weather": {"true"},
		"hourly":          {"temperature_2m,relativehumidity_2m,windspeed_10m"},
	}
	if a.location.Timezone != "" {
		q.Set("timezone", a.location.Timezone)
	}

	var resp Response
	if err := a.client.Get(ctx, "/v1/forecast", q, &resp); err != nil {
		return nil, fmt.Errorf("fetching weather for %s: %w", a.location.Name, err)
	}
	if resp.CurrentWeather == nil {
		return nil, a.client.Decode(fmt.Errorf("no current_weather for %s: %w", a.location.Name, source.ErrEmptyResponse))
	}

	cur := resp.CurrentWeather
	r := &model.WeatherReport{
		Provider:    string(source.ProviderOpenMeteo),
		Location:    a.location.Name,
		Condition:   Condition(cur.WeatherCode),
		Description: Describe(cur.WeatherCode),
		TempC:       cur.Temperature,
		FeelsLikeC:  cur.Temperature,
		WindMS:      math.Round(cur.WindSpeed/3.6*10) / 10,
		WindDir:     compass(cur.WindDirection),
		FetchedAt:   a.now(),
	}
	if len(resp.Hourly.RelativeHumidity) > 0 {
		r.Humidity = int(math.Round(resp.Hourly.RelativeHumidity[0]))
	}

	return r, nil
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var points = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// compass converts degrees to a 16-point direction.
func compass(deg float64) string {
	i := int(math.Round(math.Mod(deg, 360)/22.5)) % len(points)
	if i < 0 {
		i += len(points)
	}
	return points[i]
}

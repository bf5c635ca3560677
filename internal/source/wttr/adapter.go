package wttr

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/source"
)

// kmhToMS converts km/h to m/s.
const kmhToMS = 0.278

// conditions maps WWO weather codes used by wttr.in.
var conditions = map[int]model.Condition{
	113: model.ConditionClear,
	116: model.ConditionPartlyCloudy,
	119: model.ConditionCloudy,
	122: model.ConditionCloudy,
	143: model.ConditionFog,
	248: model.ConditionFog,
	260: model.ConditionFog,

	176: model.ConditionRain,
	182: model.ConditionRain,
	185: model.ConditionRain,
	263: model.ConditionRain,
	266: model.ConditionRain,
	293: model.ConditionRain,
	296: model.ConditionRain,
	299: model.ConditionRain,
	302: model.ConditionRain,
	305: model.ConditionRain,
	308: model.ConditionRain,
	311: model.ConditionRain,
	314: model.ConditionRain,
	317: model.ConditionRain,
	350: model.ConditionRain,
	353: model.ConditionRain,
	356: model.ConditionRain,
	359: model.ConditionRain,
	362: model.ConditionRain,
	365: model.ConditionRain,
	374: model.ConditionRain,
	377: model.ConditionRain,

	179: model.ConditionSnow,
	227: model.ConditionSnow,
	230: model.ConditionSnow,
	281: model.ConditionSnow,
	284: model.ConditionSnow,
	320: model.ConditionSnow,
	323: model.ConditionSnow,
	326: model.ConditionSnow,
	329: model.ConditionSnow,
	332: model.ConditionSnow,
	335: model.ConditionSnow,
	338: model.ConditionSnow,
	368: model.ConditionSnow,
	371: model.ConditionSnow,

	200: model.ConditionThunder,
	386: model.ConditionThunder,
	389: model.ConditionThunder,
	392: model.ConditionThunder,
	395: model.ConditionThunder,
}

// Condition maps a wttr.in weather code. Unknown codes are cloudy.
func Condition(code int) model.Condition {
	if c, ok := conditions[code]; ok {
		return c
	}
	return model.ConditionCloudy
}

// Adapter implements source.WeatherSource for wttr.in.
type Adapter struct {
	client *source.Client
	now    func() time.Time
}

// NewAdapter creates a wttr.in adapter rooted at baseURL.
func NewAdapter(baseURL string, timeout time.Duration) *Adapter {
	return &Adapter{
		client: source.NewClient(source.ProviderWttr, baseURL, timeout),
		now:    time.Now,
	}
}

func (a *Adapter) Name() source.Provider {
	return source.ProviderWttr
}

// Weather fetches GET /<city>?format=j1.
func (a *Adapter) Weather(ctx context.Context, city string) (*model.WeatherReport, error) {
	var resp Response
	path := "/" + url.PathEscape(strings.TrimSpace(city))
	if err := a.client.Get(ctx, path, url.Values{"format": {"j1"}}, &resp); err != nil {
		return nil, fmt.Errorf("fetching weather for %s: %w", city, err)
	}

	if len(resp.CurrentCondition) == 0 {
		return nil, a.client.Decode(fmt.Errorf("no current_condition for %s: %w", city, source.ErrEmptyResponse))
	}

	return a.toReport(city, resp), nil
}

func (a *Adapter) toReport(city string, resp Response) *model.WeatherReport {
	cur := resp.CurrentCondition[0]

	r := &model.WeatherReport{
		Provider:     string(source.ProviderWttr),
		Location:     city,
		Condition:    Condition(atoi(cur.WeatherCode)),
		Description:  firstValue(cur.WeatherDesc),
		TempC:        atof(cur.TempC),
		FeelsLikeC:   atof(cur.FeelsLikeC),
		Humidity:     atoi(cur.Humidity),
		WindMS:       round1(atof(cur.WindSpeedKmph) * kmhToMS),
		WindDir:      cur.WindDir16Point,
		HasDetail:    true,
		PressureMb:   atoi(cur.Pressure),
		VisibilityKm: atoi(cur.Visibility),
		UVIndex:      atoi(cur.UVIndex),
		CloudCover:   atoi(cur.CloudCover),
		FetchedAt:    a.now(),
	}

	if len(resp.NearestArea) > 0 {
		if name := firstValue(resp.NearestArea[0].AreaName); name != "" {
			r.Location = name
		}
	}

	if len(resp.Weather) > 0 {
		day := resp.Weather[0]
		r.MaxC = atof(day.MaxTempC)
		r.MinC = atof(day.MinTempC)
		if len(day.Astronomy) > 0 {
			astro := day.Astronomy[0]
			r.Sunrise = astro.Sunrise
			r.Sunset = astro.Sunset
			r.MoonPhase = astro.MoonPhase
			r.MoonIllumination = atoi(astro.MoonIllumination)
		}
	}

	return r
}

func firstValue(values []Value) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0].Value)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

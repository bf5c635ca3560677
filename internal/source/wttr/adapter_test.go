package wttr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/source"
)

const sampleJ1 = `{
  "current_condition": [{
    "temp_C": "18", "FeelsLikeC": "17", "humidity": "64",
    "windspeedKmph": "15", "winddir16Point": "WSW",
    "pressure": "1016", "visibility": "10", "uvIndex": "4",
    "cloudcover": "25", "weatherCode": "116",
    "weatherDesc": [{"value": "Partly cloudy"}]
  }],
  "nearest_area": [{"areaName": [{"value": "Paris"}], "country": [{"value": "France"}]}],
  "weather": [{
    "maxtempC": "21", "mintempC": "12",
    "astronomy": [{"sunrise": "06:45 AM", "sunset": "08:30 PM", "moon_phase": "Waxing Gibbous", "moon_illumination": "78"}]
  }]
}`

func TestWeatherParsesJ1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Paris", r.URL.Path)
		assert.Equal(t, "j1", r.URL.Query().Get("format"))
		w.Write([]byte(sampleJ1))
	}))
	defer srv.Close()

	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a := NewAdapter(srv.URL, time.Second)
	a.now = func() time.Time { return fixed }

	r, err := a.Weather(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, &model.WeatherReport{
		Provider:         "wttr.in",
		Location:         "Paris",
		Condition:        model.ConditionPartlyCloudy,
		Description:      "Partly cloudy",
		TempC:            18,
		FeelsLikeC:       17,
		Humidity:         64,
		WindMS:           4.2,
		WindDir:          "WSW",
		HasDetail:        true,
		PressureMb:       1016,
		VisibilityKm:     10,
		UVIndex:          4,
		CloudCover:       25,
		MaxC:             21,
		MinC:             12,
		Sunrise:          "06:45 AM",
		Sunset:           "08:30 PM",
		MoonPhase:        "Waxing Gibbous",
		MoonIllumination: 78,
		FetchedAt:        fixed,
	}, r)
}

func TestWeatherEscapesCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/New York", r.URL.Path)
		w.Write([]byte(`{"current_condition":[{"temp_C":"5","weatherCode":"999"}]}`))
	}))
	defer srv.Close()

	r, err := NewAdapter(srv.URL, time.Second).Weather(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, "New York", r.Location)
	assert.Equal(t, model.ConditionCloudy, r.Condition)
	assert.Equal(t, 5.0, r.TempC)
}

func TestWeatherEmptyConditionIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_condition":[]}`))
	}))
	defer srv.Close()

	_, err := NewAdapter(srv.URL, time.Second).Weather(context.Background(), "Nowhere")
	perr, ok := source.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, source.KindDecode, perr.Kind)
	assert.ErrorIs(t, err, source.ErrEmptyResponse)
}

func TestCondition(t *testing.T) {
	tests := []struct {
		code int
		want model.Condition
	}{
		{113, model.ConditionClear},
		{116, model.ConditionPartlyCloudy},
		{122, model.ConditionCloudy},
		{248, model.ConditionFog},
		{296, model.ConditionRain},
		{338, model.ConditionSnow},
		{182, model.ConditionRain},
		{317, model.ConditionRain},
		{350, model.ConditionRain},
		{362, model.ConditionRain},
		{365, model.ConditionRain},
		{374, model.ConditionRain},
		{377, model.ConditionRain},
		{281, model.ConditionSnow},
		{284, model.ConditionSnow},
		{389, model.ConditionThunder},
		{0, model.ConditionCloudy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Condition(tt.code), "code %d", tt.code)
	}
}

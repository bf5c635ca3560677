package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/source"
)

type fakeWeather struct {
	name source.Provider

	mu     sync.Mutex
	cities []string
	report *model.WeatherReport
	err    error
	// block, when set, makes Weather wait for it or for ctx cancellation.
	block chan struct{}
}

func (f *fakeWeather) Name() source.Provider { return f.name }

func (f *fakeWeather) Weather(ctx context.Context, city string) (*model.WeatherReport, error) {
	f.mu.Lock()
	f.cities = append(f.cities, city)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	r := *f.report
	return &r, nil
}

func (f *fakeWeather) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.cities...)
}

var errDown = &source.ProviderError{Provider: "fake", Kind: source.KindStatus, Status: 503, Err: errors.New("down")}

func TestWeatherPrimarySuccess(t *testing.T) {
	primary := &fakeWeather{name: source.ProviderWttr, report: &model.WeatherReport{Location: "Paris", TempC: 18}}
	secondary := &fakeWeather{name: source.ProviderOpenMeteo, report: &model.WeatherReport{Location: "New York"}}
	w := NewWeather(primary, secondary)

	snap := w.Refresh(context.Background(), "Paris")

	assert.Equal(t, model.WeatherSuccess, snap.State)
	assert.Equal(t, "Paris", snap.City)
	assert.Equal(t, 18.0, snap.Report.TempC)
	assert.Empty(t, secondary.calls())
	assert.True(t, w.Current(snap.Generation))
	assert.Equal(t, snap, w.Snapshot())
}

func TestWeatherFallsBackToSecondary(t *testing.T) {
	primary := &fakeWeather{name: source.ProviderWttr, err: errDown}
	secondary := &fakeWeather{name: source.ProviderOpenMeteo, report: &model.WeatherReport{Location: "New York", TempC: 21}}
	w := NewWeather(primary, secondary)

	snap := w.Refresh(context.Background(), "Paris")

	assert.Equal(t, []string{"Paris"}, primary.calls())
	assert.Len(t, secondary.calls(), 1)
	assert.Equal(t, model.WeatherDegraded, snap.State)
	assert.Equal(t, "Paris", snap.City)
	require.NotNil(t, snap.Report)
	assert.Equal(t, "New York", snap.Report.Location)
	assert.Equal(t, "Weather for Paris unavailable, showing New York", snap.Notice)
}

func TestWeatherBothFail(t *testing.T) {
	primary := &fakeWeather{name: source.ProviderWttr, err: errDown}
	secondary := &fakeWeather{name: source.ProviderOpenMeteo, err: errDown}
	w := NewWeather(primary, secondary)

	snap := w.Refresh(context.Background(), "Paris")

	assert.Equal(t, model.WeatherFailed, snap.State)
	assert.Nil(t, snap.Report)
	assert.Equal(t, "Unable to load weather for Paris", snap.Error)
}

func TestWeatherBlankCityUsesDefault(t *testing.T) {
	primary := &fakeWeather{name: source.ProviderWttr, report: &model.WeatherReport{}}
	w := NewWeather(primary, nil)

	snap := w.Refresh(context.Background(), "  ")
	assert.Equal(t, model.DefaultCity, snap.City)
	assert.Equal(t, []string{model.DefaultCity}, primary.calls())
}

func TestWeatherStaleResultDiscarded(t *testing.T) {
	block := make(chan struct{})
	primary := &fakeWeather{name: source.ProviderWttr, report: &model.WeatherReport{Location: "x"}, block: block}
	w := NewWeather(primary, nil)

	first := make(chan model.WeatherSnapshot, 1)
	go func() { first <- w.Refresh(context.Background(), "Paris") }()

	require.Eventually(t, func() bool { return len(primary.calls()) == 1 }, time.Second, 5*time.Millisecond)

	primary.mu.Lock()
	primary.block = nil
	primary.mu.Unlock()

	second := w.Refresh(context.Background(), "Rome")
	stale := <-first

	assert.False(t, w.Current(stale.Generation))
	assert.True(t, w.Current(second.Generation))
	assert.Greater(t, second.Generation, stale.Generation)

	got := w.Snapshot()
	assert.Equal(t, "Rome", got.City)
	assert.Equal(t, model.WeatherSuccess, got.State)
}

func TestWeatherFetchesOverlapIndependently(t *testing.T) {
	block := make(chan struct{})
	primary := &fakeWeather{name: source.ProviderWttr, report: &model.WeatherReport{Location: "x"}, block: block}
	w := NewWeather(primary, nil)

	results := make(chan model.WeatherSnapshot, 2)
	go func() { results <- w.Fetch(context.Background(), "Paris") }()
	go func() { results <- w.Fetch(context.Background(), "Rome") }()

	require.Eventually(t, func() bool { return len(primary.calls()) == 2 }, time.Second, 5*time.Millisecond)
	close(block)

	cities := map[string]model.WeatherState{}
	for range 2 {
		snap := <-results
		cities[snap.City] = snap.State
	}
	assert.Equal(t, map[string]model.WeatherState{
		"Paris": model.WeatherSuccess,
		"Rome":  model.WeatherSuccess,
	}, cities)
	assert.Equal(t, model.WeatherIdle, w.Snapshot().State)
}

func TestWeatherFetchLeavesRefreshRunning(t *testing.T) {
	block := make(chan struct{})
	primary := &fakeWeather{name: source.ProviderWttr, report: &model.WeatherReport{Location: "x"}, block: block}
	w := NewWeather(primary, nil)

	refreshed := make(chan model.WeatherSnapshot, 1)
	go func() { refreshed <- w.Refresh(context.Background(), "Paris") }()
	require.Eventually(t, func() bool { return len(primary.calls()) == 1 }, time.Second, 5*time.Millisecond)

	fetched := make(chan model.WeatherSnapshot, 1)
	go func() { fetched <- w.Fetch(context.Background(), "Rome") }()
	require.Eventually(t, func() bool { return len(primary.calls()) == 2 }, time.Second, 5*time.Millisecond)
	close(block)

	snap := <-refreshed
	assert.Equal(t, model.WeatherSuccess, snap.State)
	assert.True(t, w.Current(snap.Generation))
	assert.Equal(t, model.WeatherSuccess, (<-fetched).State)
	assert.Equal(t, "Paris", w.Snapshot().City)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "Unable to load weather for Oslo", FailureMessage("Oslo"))
}

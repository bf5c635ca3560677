package refresh

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/source"
)

// weatherTimeout bounds one refresh across both providers.
const weatherTimeout = 30 * time.Second

// Weather runs the weather fallback chain. Refreshes are numbered; starting a
// new one cancels the one in flight and only the newest may publish.
type Weather struct {
	primary   source.WeatherSource
	secondary source.WeatherSource

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	snapshot model.WeatherSnapshot
}

// NewWeather returns a Weather pipeline. secondary may be nil.
func NewWeather(primary, secondary source.WeatherSource) *Weather {
	return &Weather{
		primary:   primary,
		secondary: secondary,
		snapshot:  model.WeatherSnapshot{State: model.WeatherIdle},
	}
}

// Snapshot returns the newest published state.
func (w *Weather) Snapshot() model.WeatherSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot
}

// Current reports whether gen belongs to the newest refresh.
func (w *Weather) Current(gen uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return gen == w.gen
}

// begin starts a new generation, cancelling the previous one.
func (w *Weather) begin(parent context.Context, city string) (context.Context, uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	ctx, cancel := context.WithTimeout(parent, weatherTimeout)
	w.cancel = cancel
	w.gen++

	w.snapshot = model.WeatherSnapshot{
		State:      model.WeatherLoading,
		Generation: w.gen,
		City:       city,
		Report:     w.snapshot.Report,
	}
	return ctx, w.gen
}

// publish stores snap if its generation is still current.
func (w *Weather) publish(snap model.WeatherSnapshot) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if snap.Generation != w.gen {
		return false
	}
	w.snapshot = snap
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	return true
}

// Refresh fetches weather for city, falling back to the secondary provider.
// The returned snapshot carries its generation; callers must drop it when
// Current reports false.
func (w *Weather) Refresh(ctx context.Context, city string) model.WeatherSnapshot {
	city = strings.TrimSpace(city)
	if city == "" {
		city = model.DefaultCity
	}

	ctx, gen := w.begin(ctx, city)
	snap := w.fetch(ctx, city)
	snap.Generation = gen
	snap.City = city

	if !w.publish(snap) {
		log.Debug().Uint64("generation", gen).Str("city", city).Msg("discarding stale weather result")
	}
	return snap
}

// Fetch runs the fallback chain for city on its own. It neither cancels nor
// is cancelled by other lookups, and it leaves Snapshot untouched.
func (w *Weather) Fetch(ctx context.Context, city string) model.WeatherSnapshot {
	city = strings.TrimSpace(city)
	if city == "" {
		city = model.DefaultCity
	}

	ctx, cancel := context.WithTimeout(ctx, weatherTimeout)
	defer cancel()

	snap := w.fetch(ctx, city)
	snap.City = city
	return snap
}

func (w *Weather) fetch(ctx context.Context, city string) model.WeatherSnapshot {
	report, err := w.primary.Weather(ctx, city)
	if err == nil {
		return model.WeatherSnapshot{State: model.WeatherSuccess, Report: report}
	}
	log.Warn().Err(err).Str("city", city).Str("provider", string(w.primary.Name())).Msg("primary weather provider failed")

	if w.secondary != nil && ctx.Err() == nil {
		report, err = w.secondary.Weather(ctx, city)
		if err == nil {
			return model.WeatherSnapshot{
				State:  model.WeatherDegraded,
				Report: report,
				Notice: degradedNotice(city, report.Location),
			}
		}
		log.Warn().Err(err).Str("city", city).Str("provider", string(w.secondary.Name())).Msg("secondary weather provider failed")
	}

	return model.WeatherSnapshot{
		State: model.WeatherFailed,
		Error: FailureMessage(city),
	}
}

// FailureMessage is the text shown when no provider could answer.
func FailureMessage(city string) string {
	return fmt.Sprintf("Unable to load weather for %s", city)
}

func degradedNotice(city, location string) string {
	if strings.EqualFold(city, location) {
		return fmt.Sprintf("Backup provider in use for %s", location)
	}
	return fmt.Sprintf("Weather for %s unavailable, showing %s", city, location)
}

package app

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/collection"
	"github.com/nhle/dashboard/internal/credential"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/refresh"
	"github.com/nhle/dashboard/internal/schedule"
	"github.com/nhle/dashboard/internal/settings"
	"github.com/nhle/dashboard/internal/source/openmeteo"
	"github.com/nhle/dashboard/internal/source/quotable"
	"github.com/nhle/dashboard/internal/source/wttr"
	"github.com/nhle/dashboard/internal/store"
	"github.com/nhle/dashboard/internal/sysinfo"
)

// Context bundles the state layer shared by the TUI and the JSON API.
type Context struct {
	Config    *model.AppConfig
	Store     store.RecordStore
	Settings  *settings.Manager
	Todos     *collection.Todos
	Notes     *collection.Notes
	Projects  *collection.Projects
	Weather   *refresh.Weather
	Quotes    *refresh.Quotes
	Probe     *sysinfo.Probe
	Scheduler *schedule.Scheduler
}

// NewContext wires the collections, refreshers and probes over s. secrets
// may be nil when no keyring is available.
func NewContext(cfg *model.AppConfig, s store.RecordStore, secrets credential.Store) *Context {
	timeout := cfg.Providers.Timeout()
	opts := collection.Options{}

	return &Context{
		Config:   cfg,
		Store:    s,
		Settings: settings.NewManager(s, secrets),
		Todos:    collection.NewTodos(s, opts),
		Notes:    collection.NewNotes(s, opts),
		Projects: collection.NewProjects(s, opts),
		Weather: refresh.NewWeather(
			wttr.NewAdapter(cfg.Providers.WeatherURL, timeout),
			openmeteo.NewAdapter(cfg.Providers.FallbackWeatherURL, cfg.FallbackLocation, timeout),
		),
		Quotes:    refresh.NewQuotes(quotable.NewAdapter(cfg.Providers.QuoteURL, timeout)),
		Probe:     sysinfo.NewProbe(),
		Scheduler: schedule.New(),
	}
}

// Load reads the settings and arms the scheduler. Later settings saves
// rearm the weather job when the refresh interval changes.
func (c *Context) Load(ctx context.Context) (model.Settings, error) {
	s, err := c.Settings.Load(ctx)
	if err != nil {
		return s, err
	}

	c.Scheduler.Register(schedule.JobClock, schedule.ClockInterval, 0)
	c.Scheduler.Register(schedule.JobWeather, s.RefreshDuration(), 0)
	c.Scheduler.Register(schedule.JobMetrics, schedule.MetricsInterval, 0)
	c.Scheduler.Register(schedule.JobSpeedTest, schedule.SpeedTestInterval, schedule.SpeedTestInitialDelay)
	c.Scheduler.Register(schedule.JobBattery, schedule.BatteryInterval, 0)

	var interval atomic.Int64
	interval.Store(int64(s.RefreshDuration()))
	c.Settings.Subscribe(func(s model.Settings) {
		d := s.RefreshDuration()
		if interval.Swap(int64(d)) == int64(d) {
			return
		}
		c.Scheduler.Rearm(schedule.JobWeather, d)
	})

	log.Info().
		Str("theme", string(s.Theme)).
		Int("refresh_interval", s.RefreshInterval).
		Msg("dashboard state loaded")

	return s, nil
}

// Close stops the scheduler.
func (c *Context) Close() {
	c.Scheduler.Stop()
}

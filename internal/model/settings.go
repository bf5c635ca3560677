package model

import "time"

// Theme is the colour scheme of the dashboard.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Default values applied when a field is missing from the stored record.
const (
	DefaultUserName        = "User"
	DefaultTheme           = ThemeLight
	DefaultRefreshInterval = 10
	DefaultCity            = "Your City"

	// MaxRefreshInterval caps the weather refresh period at one day.
	MaxRefreshInterval = 1440
)

// Settings is the single user configuration record. JSON names match the
// keys written by earlier versions of the dashboard so old records still
// merge cleanly.
type Settings struct {
	// UserName is shown in the greeting.
	UserName string `json:"userName"`

	// Theme selects the light or dark palette.
	Theme Theme `json:"theme" validate:"oneof=light dark"`

	// RefreshInterval is the weather refresh period in minutes.
	RefreshInterval int `json:"refreshInterval" validate:"min=1,max=1440"`

	ShowSeconds         bool   `json:"showSeconds"`
	EnableNotifications bool   `json:"enableNotifications"`
	City                string `json:"city"`

	// Calendar integration credentials. Stored but not used by any widget yet.
	GoogleCalendarID string `json:"googleCalendarId"`
	GoogleAPIKey     string `json:"googleApiKey"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		UserName:            DefaultUserName,
		Theme:               DefaultTheme,
		RefreshInterval:     DefaultRefreshInterval,
		ShowSeconds:         true,
		EnableNotifications: true,
		City:                DefaultCity,
	}
}

// Normalize replaces field values that can never be valid with their
// defaults. It is applied after a stored record is merged over the defaults.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if !s.Theme.Valid() {
		s.Theme = d.Theme
	}
	if s.RefreshInterval <= 0 {
		s.RefreshInterval = d.RefreshInterval
	}
	if s.RefreshInterval > MaxRefreshInterval {
		s.RefreshInterval = MaxRefreshInterval
	}
	return s
}

// RefreshDuration is RefreshInterval as a time.Duration.
func (s Settings) RefreshDuration() time.Duration {
	return time.Duration(s.RefreshInterval) * time.Minute
}

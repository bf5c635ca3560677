package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/credential"
	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/store"
	"github.com/nhle/dashboard/internal/validate"
)

// SecretAPIKey is the credential key holding Settings.GoogleAPIKey.
const SecretAPIKey = "googleApiKey"

// Manager owns the single settings record.
type Manager struct {
	store   store.RecordStore
	secrets credential.Store

	mu      sync.Mutex
	current model.Settings
	subs    []func(model.Settings)
}

// NewManager returns a Manager over s. secrets may be nil, in which case the
// API key stays inside the stored record.
func NewManager(s store.RecordStore, secrets credential.Store) *Manager {
	return &Manager{
		store:   s,
		secrets: secrets,
		current: model.DefaultSettings(),
	}
}

// Subscribe registers fn to be called with the new settings after every
// successful Save, Reset or ToggleTheme.
func (m *Manager) Subscribe(fn func(model.Settings)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// Current returns the settings most recently loaded or saved.
func (m *Manager) Current() model.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Load reads the stored record and overlays it on the defaults. Fields
// missing from the record, or stored with the wrong type, keep their
// default value.
func (m *Manager) Load(ctx context.Context) (model.Settings, error) {
	s := model.DefaultSettings()

	raw, ok, err := m.store.Load(ctx, store.KeySettings)
	if err != nil {
		return s, fmt.Errorf("loading settings: %w", err)
	}
	if ok {
		s = overlay(s, raw)
	}

	if m.secrets != nil && s.GoogleAPIKey == "" {
		key, err := m.secrets.Get(SecretAPIKey)
		switch {
		case err == nil:
			s.GoogleAPIKey = key
		case !errors.Is(err, credential.ErrNotFound):
			log.Warn().Err(err).Msg("reading api key from keyring")
		}
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	return s, nil
}

// overlay decodes raw on top of base one field at a time.
func overlay(base model.Settings, raw json.RawMessage) model.Settings {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return base
	}

	for name, value := range fields {
		single, err := json.Marshal(map[string]json.RawMessage{name: value})
		if err != nil {
			continue
		}
		candidate := base
		if err := json.Unmarshal(single, &candidate); err != nil {
			log.Debug().Str("field", name).Err(err).Msg("ignoring stored setting")
			continue
		}
		base = candidate
	}

	return base.Normalize()
}

// Save validates s, persists it and notifies subscribers.
func (m *Manager) Save(ctx context.Context, s model.Settings) error {
	if err := validate.Struct(&s); err != nil {
		return err
	}

	record := s
	if m.secrets != nil {
		if err := m.storeSecret(s.GoogleAPIKey); err != nil {
			log.Warn().Err(err).Msg("keyring unavailable, keeping api key in settings record")
		} else {
			record.GoogleAPIKey = ""
		}
	}

	if err := m.store.Save(ctx, store.KeySettings, record); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	m.mu.Lock()
	m.current = s
	subs := append([]func(model.Settings){}, m.subs...)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}

	log.Debug().Str("theme", string(s.Theme)).Int("refresh_interval", s.RefreshInterval).Msg("settings saved")

	return nil
}

func (m *Manager) storeSecret(value string) error {
	if value == "" {
		return m.secrets.Delete(SecretAPIKey)
	}
	return m.secrets.Set(SecretAPIKey, value)
}

// Reset persists the default settings.
func (m *Manager) Reset(ctx context.Context) (model.Settings, error) {
	d := model.DefaultSettings()
	if err := m.Save(ctx, d); err != nil {
		return m.Current(), err
	}
	return d, nil
}

// ToggleTheme flips between the light and dark theme and saves.
func (m *Manager) ToggleTheme(ctx context.Context) (model.Settings, error) {
	s, err := m.Load(ctx)
	if err != nil {
		return s, err
	}

	s.Theme = s.Theme.Toggle()
	if err := m.Save(ctx, s); err != nil {
		return m.Current(), err
	}
	return s, nil
}

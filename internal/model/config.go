package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StorageConfig locates the local record database.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the log file written next to the database.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// ProvidersConfig holds the base URLs of the remote data providers.
type ProvidersConfig struct {
	// WeatherURL is the primary provider (wttr.in JSON format).
	WeatherURL string `mapstructure:"weather_url" yaml:"weather_url"`

	// FallbackWeatherURL is the secondary provider (open-meteo forecast API).
	FallbackWeatherURL string `mapstructure:"fallback_weather_url" yaml:"fallback_weather_url"`

	QuoteURL   string `mapstructure:"quote_url" yaml:"quote_url"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// Timeout returns TimeoutSec as a duration.
func (p ProvidersConfig) Timeout() time.Duration {
	if p.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.TimeoutSec) * time.Second
}

// Location is a named coordinate used by the secondary weather provider,
// which cannot look places up by name.
type Location struct {
	Name      string  `mapstructure:"name" yaml:"name"`
	Latitude  float64 `mapstructure:"latitude" yaml:"latitude"`
	Longitude float64 `mapstructure:"longitude" yaml:"longitude"`
	Timezone  string  `mapstructure:"timezone" yaml:"timezone"`
}

// ServerConfig configures `dashboard serve`.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// AppConfig is the top-level application configuration. User-facing
// preferences live in Settings inside the record store; AppConfig only holds
// deployment concerns.
type AppConfig struct {
	Storage          StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Log              LogConfig       `mapstructure:"log" yaml:"log"`
	Providers        ProvidersConfig `mapstructure:"providers" yaml:"providers"`
	FallbackLocation Location        `mapstructure:"fallback_location" yaml:"fallback_location"`
	Server           ServerConfig    `mapstructure:"server" yaml:"server"`
}

// ConfigDir returns ~/.config/dashboard.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "dashboard")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/dashboard/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Storage: StorageConfig{Path: filepath.Join(dir, "dashboard.db")},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "dashboard.log"),
		},
		Providers: ProvidersConfig{
			WeatherURL:         "https://wttr.in",
			FallbackWeatherURL: "https://api.open-meteo.com",
			QuoteURL:           "https://api.quotable.io",
			TimeoutSec:         10,
		},
		FallbackLocation: Location{
			Name:      "New York",
			Latitude:  40.7,
			Longitude: -74.0,
			Timezone:  "America/New_York",
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultAppConfig()
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("providers.weather_url", d.Providers.WeatherURL)
	v.SetDefault("providers.fallback_weather_url", d.Providers.FallbackWeatherURL)
	v.SetDefault("providers.quote_url", d.Providers.QuoteURL)
	v.SetDefault("providers.timeout_sec", d.Providers.TimeoutSec)
	v.SetDefault("fallback_location.name", d.FallbackLocation.Name)
	v.SetDefault("fallback_location.latitude", d.FallbackLocation.Latitude)
	v.SetDefault("fallback_location.longitude", d.FallbackLocation.Longitude)
	v.SetDefault("fallback_location.timezone", d.FallbackLocation.Timezone)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.allowed_origins", []string{})
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with DASHBOARD_ override file values
// (DASHBOARD_STORAGE_PATH, DASHBOARD_LOG_LEVEL, ...). A missing file yields
// the defaults.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("dashboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		if !errors.As(err, &notFound) && !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("providers", cfg.Providers)
	v.Set("fallback_location", cfg.FallbackLocation)
	v.Set("server", cfg.Server)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

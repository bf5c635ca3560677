package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/model"
)

// Init points the global logger at cfg.File. The terminal belongs to the TUI,
// so nothing is written to stdout. The returned closer flushes the file.
func Init(cfg model.LogConfig) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.File == "" {
		log.Logger = zerolog.New(io.Discard)
		SetLevel(cfg.Level)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	SetLevel(cfg.Level)
	log.Debug().Str("file", cfg.File).Msg("logger initialized")

	return f, nil
}

// InitConsole logs human-readable lines to w. Used by `dashboard serve`.
func InitConsole(w io.Writer, level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	SetLevel(level)
}

// SetLevel parses level and applies it globally. Unknown levels mean info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

// ErrorWithStack logs err with a stack trace attached.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

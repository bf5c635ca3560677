package logger_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/logger"
	"github.com/nhle/dashboard/internal/model"
)

func restore(t *testing.T) {
	original := log.Logger
	level := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitWritesToFile(t *testing.T) {
	restore(t)
	path := filepath.Join(t.TempDir(), "logs", "dashboard.log")

	closer, err := logger.Init(model.LogConfig{Level: "warn", File: path})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("city", "Paris").Msg("visible")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"city":"Paris"`)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestSetLevelDefaultsToInfo(t *testing.T) {
	restore(t)

	logger.SetLevel("nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logger.SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)
	var buf bytes.Buffer
	log.Logger = log.Output(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger.ErrorWithStack(errors.New("test error"))
	assert.Contains(t, buf.String(), "test error")
}

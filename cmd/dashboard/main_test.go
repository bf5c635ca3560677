package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/dashboard/internal/model"
)

func TestParseArgsDefaults(t *testing.T) {
	opts, err := parseArgs(nil, &bytes.Buffer{})
	require.NoError(t, err)

	assert.False(t, opts.serve)
	assert.Equal(t, model.DefaultConfigPath(), opts.configPath)
	assert.Empty(t, opts.dbPath)
}

func TestParseArgsServe(t *testing.T) {
	opts, err := parseArgs([]string{"serve", "--addr", ":9090", "--db", "/tmp/d.db", "--log-level", "debug"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.True(t, opts.serve)
	assert.Equal(t, ":9090", opts.addr)

	cfg := &model.AppConfig{}
	applyOverrides(cfg, opts)
	assert.Equal(t, "/tmp/d.db", cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestParseArgsRejectsAddrWithoutServe(t *testing.T) {
	_, err := parseArgs([]string{"--addr", ":9090"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = parseArgs([]string{"extra"}, &bytes.Buffer{})
	assert.EqualError(t, err, `unexpected argument "extra"`)
}

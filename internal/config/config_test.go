// SPDX-License-Identifier: MIT
package config

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Log:     LogConfig{Level: "info", Format: FormatText},
		Style:   StyleTree,
		Workers: 4,
	}, cfg)
}

func TestLoad_env(t *testing.T) {
	t.Setenv("PATTERNS_LOG_LEVEL", "warning")
	t.Setenv("PATTERNS_LOG_FORMAT", "json")
	t.Setenv("PATTERNS_WORKERS", "2")
	t.Setenv("PATTERNS_STYLE", "plain")

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, "warning", cfg.Log.Level)
	assert.Equal(t, FormatJSON, cfg.Log.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, StylePlain, cfg.Style)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Log: LogConfig{Level: "info", Format: FormatText}, Style: StyleTree, Workers: 1}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "unknown style", mutate: func(c *Config) { c.Style = "fancy" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Logger(t *testing.T) {
	var buffer bytes.Buffer

	cfg := &Config{Log: LogConfig{Level: "error", Format: FormatJSON}, Debug: true}
	logger, err := cfg.Logger(&buffer)
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger.Debug("visible")
	assert.Contains(t, buffer.String(), `"msg":"visible"`)
}

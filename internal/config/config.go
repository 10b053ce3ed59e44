// SPDX-License-Identifier: MIT

// Package config loads the patterns CLI configuration from flags & the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type (
	// Config represents the complete CLI configuration.
	Config struct {
		Log LogConfig `mapstructure:"log"`

		// Debug enables the libraries' debug messages.
		Debug bool `mapstructure:"debug"`

		// Style selects the output rendering: "tree" (styled) or "plain".
		Style string `mapstructure:"style"`

		// Workers bounds the number of filters evaluated concurrently.
		Workers int `mapstructure:"workers"`
	}

	// LogConfig controls logging.
	LogConfig struct {
		// Level is a logrus level name.
		Level string `mapstructure:"level"`
		// Format is either "text" or "json".
		Format string `mapstructure:"format"`
	}
)

// Configuration keys.
const (
	KeyDebug     = "debug"
	KeyStyle     = "style"
	KeyWorkers   = "workers"
	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"

	// EnvPrefix prefixes environment variables, e.g. PATTERNS_LOG_LEVEL for log.level.
	EnvPrefix = "PATTERNS"

	StyleTree  = "tree"
	StylePlain = "plain"

	FormatText = "text"
	FormatJSON = "json"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SetDefaults registers the default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyStyle, StyleTree)
	v.SetDefault(KeyWorkers, 4)
	v.SetDefault(KeyLogLevel, logrus.InfoLevel.String())
	v.SetDefault(KeyLogFormat, FormatText)
}

// New instantiates a viper instance reading defaults & PATTERNS_ prefixed environment variables.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	// Replace dots with underscores for nested keys in env vars.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads & validates a Config from a viper instance.
func Load(v *viper.Viper) (cfg *Config, err error) {
	cfg = new(Config)
	if err = v.Unmarshal(cfg); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		return
	}

	if err = cfg.Validate(); err != nil {
		cfg = nil
	}

	return
}

// Validate checks the Config's values.
func (c *Config) Validate() (err error) {
	switch {
	case c.Workers < 1:
		err = fmt.Errorf("%w: workers (%d) must be positive", ErrInvalidConfig, c.Workers)
	case c.Style != StyleTree && c.Style != StylePlain:
		err = fmt.Errorf("%w: unknown style (%s)", ErrInvalidConfig, c.Style)
	case c.Log.Format != FormatText && c.Log.Format != FormatJSON:
		err = fmt.Errorf("%w: unknown log format (%s)", ErrInvalidConfig, c.Log.Format)
	default:
		if _, lErr := logrus.ParseLevel(c.Log.Level); lErr != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidConfig, lErr)
		}
	}

	return
}

// Logger instantiates a logrus.Logger writing to w as configured.
//
// The debug level is enforced when Debug is set.
func (c *Config) Logger(w io.Writer) (logger *logrus.Logger, err error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		return
	}
	if c.Debug {
		level = logrus.DebugLevel
	}

	logger = logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)

	if c.Log.Format == FormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	return
}

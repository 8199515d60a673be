// Package config provides driver configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/phroun/wizardstring"
)

// Prefix is prepended to every environment variable, e.g. WIZARD_LOG_LEVEL.
const Prefix = "WIZARD"

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Default values.
const (
	DefaultLogLevel  = "INFO"
	DefaultLogFormat = LogFormatText
	DefaultHires     = "low"
	DefaultWorkers   = 4
	DefaultOutDir    = "dist"
)

// EnvConfig holds all environment-based configuration.
// Field names map to environment variables with the WIZARD_ prefix.
type EnvConfig struct {
	// LogLevel is the log verbosity level.
	// Env: WIZARD_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (text or json).
	// Env: WIZARD_LOG_FORMAT (default: text)
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Hires selects the source map resolution (low, high or boundary).
	// Env: WIZARD_HIRES (default: low)
	Hires string `envconfig:"HIRES" default:"low"`

	// IncludeContent embeds the original text in generated maps.
	// Env: WIZARD_INCLUDE_CONTENT (default: true)
	IncludeContent bool `envconfig:"INCLUDE_CONTENT" default:"true"`

	// InlineMap appends the map as a data URL instead of writing a .map file.
	// Env: WIZARD_INLINE_MAP (default: false)
	InlineMap bool `envconfig:"INLINE_MAP" default:"false"`

	// HashNames names batch outputs after a hash of their content.
	// Env: WIZARD_HASH_NAMES (default: false)
	HashNames bool `envconfig:"HASH_NAMES" default:"false"`

	// Workers bounds the number of files a batch processes at once.
	// Env: WIZARD_WORKERS (default: 4)
	Workers int `envconfig:"WORKERS" default:"4"`

	// OutDir is where batch outputs are written.
	// Env: WIZARD_OUT_DIR (default: dist)
	OutDir string `envconfig:"OUT_DIR" default:"dist"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c EnvConfig) Validate() error {
	switch LogFormat(strings.ToLower(c.LogFormat)) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q: want text or json", c.LogFormat)
	}
	if _, err := ParseResolution(c.Hires); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid worker count %d: must be at least 1", c.Workers)
	}
	return nil
}

// Format returns the normalized log format.
func (c EnvConfig) Format() LogFormat {
	return LogFormat(strings.ToLower(c.LogFormat))
}

// Resolution returns the configured source map resolution.
func (c EnvConfig) Resolution() wizardstring.Resolution {
	r, err := ParseResolution(c.Hires)
	if err != nil {
		return wizardstring.LowRes
	}
	return r
}

// ParseResolution maps low, high and boundary to a resolution. The values
// true and false are accepted as high and low.
func ParseResolution(s string) (wizardstring.Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "low", "false":
		return wizardstring.LowRes, nil
	case "high", "true":
		return wizardstring.HighRes, nil
	case "boundary":
		return wizardstring.BoundaryRes, nil
	default:
		return wizardstring.LowRes, fmt.Errorf("invalid resolution %q: want low, high or boundary", s)
	}
}

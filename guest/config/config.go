// Package config reads module settings from the environment the host passes
// to the WASI instance.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every setting name.
const EnvPrefix = "MSGWASM_"

// Config holds the module settings.
type Config struct {
	// LogLevel is a zap level name written to stderr.
	LogLevel string `mapstructure:"log_level"`

	// MaxInputSize rejects input documents larger than this many bytes.
	// Zero disables the check.
	MaxInputSize int64 `mapstructure:"max_input_size"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		MaxInputSize: 0,
	}
}

// Validate validates the configuration.
func (cfg *Config) Validate() error {
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if cfg.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative, got %d", cfg.MaxInputSize)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (cfg *Config) Level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Load reads the process environment.
func Load() (*Config, error) {
	return FromEnviron(os.Environ())
}

// FromEnviron decodes "KEY=value" pairs carrying EnvPrefix over the defaults.
func FromEnviron(environ []string) (*Config, error) {
	settings := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		settings[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package config loads linqcat settings from defaults, an optional config
// file, LINQCAT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vegasq/linqcat/internal/logging"
)

// EnvPrefix is the prefix for environment overrides, e.g. LINQCAT_LOG_LEVEL.
const EnvPrefix = "LINQCAT"

var (
	ErrInvalidWorkers = errors.New("workers must be at least 1")
	ErrInvalidLimit   = errors.New("limit must not be negative")
)

// Config is the resolved configuration.
type Config struct {
	Format  string    `mapstructure:"format"`
	Limit   int       `mapstructure:"limit"`
	Workers int       `mapstructure:"workers"`
	Table   string    `mapstructure:"table"`
	History string    `mapstructure:"history"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Logging converts the log section for the logging package.
func (c LogConfig) Logging() logging.Config {
	return logging.Config{Level: c.Level, Format: c.Format}
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:  "jsonl",
		Workers: 4,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// flagKeys maps config keys to the flag names that override them
var flagKeys = map[string]string{
	"format":    "format",
	"limit":     "limit",
	"workers":   "workers",
	"table":     "table",
	"history":   "history",
	"log.level": "log-level",
}

// Load resolves the configuration. path may be empty, in which case no
// config file is read. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("format", def.Format)
	v.SetDefault("limit", def.Limit)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("table", def.Table)
	v.SetDefault("history", def.History)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Workers)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, c.Limit)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

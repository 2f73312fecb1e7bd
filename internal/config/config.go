// Package config loads hexkey settings from flags, HEXKEY_* environment
// variables and an optional config file.
package config

import (
	"runtime"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/Amr-9/hexkey/internal/logging"
	"github.com/Amr-9/hexkey/pkg/address"
	"github.com/Amr-9/hexkey/pkg/cryptoerr"
	"github.com/Amr-9/hexkey/pkg/generator"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "HEXKEY"

// Keys shared by flags, environment and config file.
const (
	KeyConfigFile = "config"
	KeyNetwork    = "network"
	KeyWorkers    = "workers"
	KeyNth        = "nth"
	KeyLogLevel   = "log_level"
	KeyLogFormat  = "log_format"
	KeyNoColor    = "no_color"
	KeyJSON       = "json"
)

// Config holds the resolved settings.
type Config struct {
	Network   string `mapstructure:"network"`
	Workers   int    `mapstructure:"workers"`
	Nth       int    `mapstructure:"nth"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	NoColor   bool   `mapstructure:"no_color"`
	JSON      bool   `mapstructure:"json"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() *Config {
	return &Config{
		Network:   chaincfg.MainNetParams.Name,
		Workers:   DefaultWorkers(),
		Nth:       1,
		LogLevel:  "info",
		LogFormat: logging.FormatText,
	}
}

// DefaultWorkers is the number of CPUs, capped at generator.MaxWorkers.
func DefaultWorkers() int {
	return min(runtime.NumCPU(), generator.MaxWorkers)
}

// NewViper returns a viper instance with defaults and environment binding.
func NewViper() *viper.Viper {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault(KeyNetwork, def.Network)
	v.SetDefault(KeyWorkers, def.Workers)
	v.SetDefault(KeyNth, def.Nth)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyLogFormat, def.LogFormat)
	v.SetDefault(KeyNoColor, def.NoColor)
	v.SetDefault(KeyJSON, def.JSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file named by the "config" key, decodes
// the merged settings and validates them.
func Load(v *viper.Viper) (*Config, error) {
	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	conf := DefaultConfig()
	if err := v.Unmarshal(conf); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "error in config")
	}
	return conf, nil
}

// Validate performs basic validation. Search settings are checked by
// ValidateSearch, only for commands that search.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return errors.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// ValidateSearch checks the vanity search settings.
func (c *Config) ValidateSearch() error {
	if c.Workers < 1 || c.Workers > generator.MaxWorkers {
		return errors.Wrapf(cryptoerr.ErrInvalidParameter, "workers must be between 1 and %d, got %d", generator.MaxWorkers, c.Workers)
	}
	if c.Nth < 1 {
		return errors.Wrapf(cryptoerr.ErrInvalidParameter, "nth must be at least 1, got %d", c.Nth)
	}
	return nil
}

// Params resolves Network to its chain parameters.
func (c *Config) Params() (*chaincfg.Params, error) {
	return address.Params(c.Network)
}

// LoggingOptions returns the logger settings.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:   c.LogLevel,
		Format:  c.LogFormat,
		NoColor: c.NoColor,
	}
}

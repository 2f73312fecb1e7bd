package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/hexkey/pkg/cryptoerr"
)

func TestDefaultConfig(t *testing.T) {
	conf, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), conf)
	assert.GreaterOrEqual(t, conf.Workers, 1)
	assert.LessOrEqual(t, conf.Workers, 256)

	params, err := conf.Params()
	require.NoError(t, err)
	assert.Equal(t, chaincfg.MainNetParams.Name, params.Name)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HEXKEY_NETWORK", "testnet3")
	t.Setenv("HEXKEY_WORKERS", "3")
	t.Setenv("HEXKEY_LOG_FORMAT", "json")

	conf, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "testnet3", conf.Network)
	assert.Equal(t, 3, conf.Workers)
	assert.Equal(t, "json", conf.LogFormat)
	assert.Equal(t, "json", conf.LoggingOptions().Format)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hexkey.toml")
	require.NoError(t, os.WriteFile(path, []byte("network = \"regtest\"\nnth = 2\nno_color = true\n"), 0o600))

	v := NewViper()
	v.Set(KeyConfigFile, path)
	conf, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "regtest", conf.Network)
	assert.Equal(t, 2, conf.Nth)
	assert.True(t, conf.NoColor)

	v = NewViper()
	v.Set(KeyConfigFile, filepath.Join(t.TempDir(), "missing.toml"))
	_, err = Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown network", func(c *Config) { c.Network = "dogecoin" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfig()
			tt.modify(conf)
			assert.Error(t, conf.Validate())
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidateSearch(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"too many workers", func(c *Config) { c.Workers = 1000 }},
		{"zero nth", func(c *Config) { c.Nth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfig()
			tt.modify(conf)
			assert.NoError(t, conf.Validate())

			err := conf.ValidateSearch()
			require.Error(t, err)
			assert.True(t, errors.Is(err, cryptoerr.ErrInvalidParameter))
		})
	}

	assert.NoError(t, DefaultConfig().ValidateSearch())
}

func TestLoadIgnoresSearchSettings(t *testing.T) {
	t.Setenv("HEXKEY_WORKERS", "300")
	t.Setenv("HEXKEY_NTH", "0")

	conf, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, 300, conf.Workers)
	assert.Error(t, conf.ValidateSearch())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, StoreSQLite, c.StoreBackend)
	assert.Equal(t, "gophchat.db", c.StorePath)
	assert.Equal(t, "127.0.0.1:6379", c.RedisAddr)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, cfg)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_base_url": "http://json:1",
		"request_timeout": "5s",
		"log_level":       "debug",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag:2"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:2", cfg.ServerBaseURL, "flag beats json")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout, "json beats default")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, StoreSQLite, cfg.StoreBackend, "default kept")
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig([]string{"-s", "mongo"})
	assert.Error(t, err)

	_, err = LoadConfig([]string{"-t", "abc"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"redis", func(c *Config) { c.StoreBackend = StoreRedis }, false},
		{"empty url", func(c *Config) { c.ServerBaseURL = "" }, true},
		{"negative timeout", func(c *Config) { c.RequestTimeout = -time.Second }, true},
		{"empty sqlite path", func(c *Config) { c.StorePath = "" }, true},
		{"empty redis addr", func(c *Config) { c.StoreBackend = StoreRedis; c.RedisAddr = "" }, true},
		{"unknown backend", func(c *Config) { c.StoreBackend = "bolt" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}

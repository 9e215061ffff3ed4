package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
	"github.com/dmitrijs2005/gophchat/internal/timex"
)

// JsonConfig is a DTO used only for JSON unmarshalling.
type JsonConfig struct {
	EndpointAddr  string          `json:"endpoint_addr"`
	DatabaseDSN   string          `json:"database_dsn"`
	SecretKey     string          `json:"secret_key"`
	TokenValidity *timex.Duration `json:"token_validity"`
	DemoUsers     string          `json:"demo_users"`
	LogFormat     string          `json:"log_format"`
	LogLevel      string          `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c or -config in args.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.EndpointAddr, jc.EndpointAddr)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.SecretKey, jc.SecretKey)
	overlay(&cfg.DemoUsers, jc.DemoUsers)
	overlay(&cfg.LogFormat, jc.LogFormat)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.TokenValidity != nil {
		cfg.TokenValidity = jc.TokenValidity.Duration
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

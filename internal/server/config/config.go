// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty keeps chats in memory.
//   - SecretKey: HMAC secret for signing login tokens (HS256).
//   - TokenValidity: lifetime of a login token.
//   - DemoUsers: comma separated id:password pairs seeded at startup.
//   - LogFormat / LogLevel: logger selection, as in the client.
type Config struct {
	EndpointAddr  string
	DatabaseDSN   string
	SecretKey     string
	TokenValidity time.Duration
	DemoUsers     string
	LogFormat     string
	LogLevel      string
}

// DemoUser is one account parsed from Config.DemoUsers.
type DemoUser struct {
	ID       string
	Password string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden outside local use.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.DemoUsers = "demo:demo123"
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// Validate reports settings the backend cannot start with.
func (c *Config) Validate() error {
	if c.EndpointAddr == "" {
		return fmt.Errorf("endpoint address is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.TokenValidity <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidity)
	}
	if _, err := c.ParseDemoUsers(); err != nil {
		return err
	}
	return nil
}

// ParseDemoUsers splits DemoUsers ("alice:pw1,bob:pw2") into accounts.
// Blank entries are skipped; an entry without an id or password is an error.
func (c *Config) ParseDemoUsers() ([]DemoUser, error) {
	out := make([]DemoUser, 0)
	for _, entry := range strings.Split(c.DemoUsers, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		id, password, ok := strings.Cut(entry, ":")
		if !ok || id == "" || password == "" {
			return nil, fmt.Errorf("bad demo user %q, want id:password", entry)
		}
		out = append(out, DemoUser{ID: id, Password: password})
	}
	return out, nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config (if any), then command-line flags. Later sources win.
// args are the command-line arguments without the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

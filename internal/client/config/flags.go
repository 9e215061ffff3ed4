package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-s", "-d", "-r", "-l", "-v"}

// parseFlags overlays cfg with command-line flags. Only the flags listed in
// knownFlags are looked at, so flags meant for other components are ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "chat backend base url")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StoreBackend, "s", cfg.StoreBackend, "session store backend: sqlite or redis")
	fs.StringVar(&cfg.StorePath, "d", cfg.StorePath, "sqlite session store file")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for the session store")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level: debug, info, warn or error")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Untouched -t must not round a sub-second value from JSON.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}

// Package config loads runtime configuration for the chat client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   chat backend base url
//	-t int      request timeout (seconds)
//	-s string   session store backend: sqlite or redis
//	-d string   sqlite session store file
//	-r string   redis address
//	-l string   log format: text, json or zap
//	-v string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "request_timeout": "30s",
//	  "store_backend": "sqlite",
//	  "store_path": "gophchat.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "log_format": "text",
//	  "log_level": "info"
//	}
//
// Environment variables are not read.
package config

package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// New builds a Logger for the given format ("text", "json" or "zap") and level.
// slog-based loggers write to w; zap always writes to stderr.
func New(format, level string, w io.Writer) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "", "text":
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, opts))), nil
	case "json":
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, opts))), nil
	case "zap":
		return NewZapProduction(lvl)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

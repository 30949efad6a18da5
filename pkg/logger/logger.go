package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON structured logger at the given level. Unrecognized
// levels fall back to info.
func New(level string) *slog.Logger {
	l := new(slog.LevelVar) // info by default
	switch strings.ToLower(level) {
	case "debug":
		l.Set(slog.LevelDebug)
	case "warn":
		l.Set(slog.LevelWarn)
	case "error":
		l.Set(slog.LevelError)
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l})
	return slog.New(h)
}

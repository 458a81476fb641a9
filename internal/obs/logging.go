// Package obs contains observability utilities such as logging.
package obs

import (
	"io"
	"log/slog"
	"strings"
)

// Logger is the global structured logger used by the shop.
//
// Logger is exported to allow other packages to use it for logging.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// InitLoggerTo initializes the global Logger writing JSON to w at the named
// level (debug, info, warn, error). Unknown levels mean info.
func InitLoggerTo(w io.Writer, level string) {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	Logger = slog.New(h)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

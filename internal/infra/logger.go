package infra

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds the application logger. Frames own stdout, so all
// logging goes to the writer the caller hands in (stderr in the app).
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

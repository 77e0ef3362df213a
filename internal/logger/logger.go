package logger

import (
	"log/slog"
	"os"
	"strings"
)

const levelEnv = "LOG_LEVEL"

// New creates a JSON slog.Logger writing to stdout. The minimum level is
// taken from LOG_LEVEL (debug, info, warn, error); anything else means info.
func New() *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(os.Getenv(levelEnv))})
	return slog.New(handler)
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

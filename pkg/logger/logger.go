package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide structured logger. Init must run before anything
// else logs.
var Log *slog.Logger

func Init() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}

	// JSON handler so agent logs can be shipped and filtered as-is
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}

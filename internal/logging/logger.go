package logging

import (
	"log/slog"
	"os"
)

// Stdout returns the JSON stdout handler. Development builds also emit debug records.
func Stdout(appEnv string) slog.Handler {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

// Setup installs the stdout handler as the default logger until the
// database-backed handler is available.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(Stdout(appEnv)))
}

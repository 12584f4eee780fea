package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. JSON output so log lines stay machine
// readable when the service runs behind a collector.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

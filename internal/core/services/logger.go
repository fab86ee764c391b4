package services

import (
	"io"
	"log/slog"
)

// resolveLogger guarantees a non-nil logger for service code paths.
func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return logger
}

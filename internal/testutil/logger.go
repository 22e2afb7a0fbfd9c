package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards everything, for quiet tests
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

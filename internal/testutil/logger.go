package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output, for tests that do
// not assert on logging.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

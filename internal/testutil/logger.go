package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger returns a logger that drops everything, keeping test
// output quiet.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

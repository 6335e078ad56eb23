package testutil

import (
	"log/slog"
	"testing"
)

// SilenceLogs discards the default slog output for the rest of the test.
// The previous default logger is restored on cleanup.
func SilenceLogs(t testing.TB) {
	t.Helper()
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.DiscardHandler))
	t.Cleanup(func() { slog.SetDefault(prev) })
}

// QuietLogger returns a logger that discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

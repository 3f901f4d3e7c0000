package cli

import (
	"io"
	"log/slog"
)

// newLogger creates the text logger used by all commands. Diagnostics go to
// w (stderr) so they never mix with document output on stdout.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}

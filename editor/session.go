package editor

import (
	"io"
	"log/slog"

	"github.com/farcloser/waveforge/internal/applog"
)

// NewSessionLogger builds the slog.Logger an Editor session should be
// given: applog picks a colourised console writer on an interactive
// terminal, structured JSON otherwise. w may be nil (defaults to stderr).
func NewSessionLogger(w io.Writer, level slog.Level) *slog.Logger {
	return applog.New(w, level)
}

// Logger returns the logger this editor was opened/created with, tagged
// with its session ID so multi-file callers can tell sessions apart in
// shared log output.
func (e *Editor) Logger() *slog.Logger {
	return e.logger.With("session", e.id.String())
}

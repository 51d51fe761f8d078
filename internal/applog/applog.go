// Package applog wires the session's slog.Logger to a zerolog sink: a
// colourised console writer on an interactive terminal, structured JSON
// otherwise. Every other package logs through log/slog; this package is
// the only one that imports zerolog directly.
package applog

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// New builds a slog.Logger writing to w (os.Stderr if nil). When w is a
// terminal, output is zerolog's human-readable console writer in colour;
// otherwise it's newline-delimited JSON suitable for log aggregation.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	zerolog.SetGlobalLevel(toZerologLevel(level))

	var zw io.Writer = w

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		zw = zerolog.ConsoleWriter{Out: colorable.NewColorable(f), TimeFormat: "15:04:05"}
	}

	logger := zerolog.New(zw).With().Timestamp().Logger()

	handler := slogzerolog.Option{Level: level, Logger: &logger}.NewZerologHandler()

	return slog.New(handler)
}

func toZerologLevel(level slog.Level) zerolog.Level {
	switch {
	case level <= slog.LevelDebug:
		return zerolog.DebugLevel
	case level <= slog.LevelInfo:
		return zerolog.InfoLevel
	case level <= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

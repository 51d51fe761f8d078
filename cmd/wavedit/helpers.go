package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/farcloser/waveforge/editor"
)

var (
	errInvalidArgCount = errors.New("expected exactly one argument: file path")
	errDeclinedByUser  = errors.New("declined to overwrite existing file")
)

func newLogger() *slog.Logger {
	return editor.NewSessionLogger(os.Stderr, slog.LevelInfo)
}

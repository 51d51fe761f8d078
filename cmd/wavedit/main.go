// Package main provides the wavedit CLI, a thin diagnostic front end over
// package editor: inspecting a WAVE file's metadata and applying one
// frequency-domain modification per invocation.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/primordium/app"

	"github.com/farcloser/waveforge/version"
)

func main() {
	ctx := context.Background()
	app.New(ctx, version.Name())

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "WAVE waveform editing core CLI",
		Version: version.Version() + " (" + version.Commit() + " - " + version.Date() + ")",
		Commands: []*cli.Command{
			infoCommand(),
			applyCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}

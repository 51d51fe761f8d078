package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/farcloser/waveforge/editor"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print a WAVE file's decoded metadata",
		ArgsUsage: "<file>",
		Action:    runInfo,
	}
}

func runInfo(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()

	e, err := editor.OpenFile(ctx, path, newLogger())
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer e.Close()

	p := message.NewPrinter(language.English)
	format := e.Format()

	p.Printf("path:          %s\n", path)
	p.Printf("sample rate:   %d Hz\n", format.SampleRate)
	p.Printf("bit depth:     %d\n", format.BitsPerSample)
	p.Printf("channels:      %d\n", format.Channels)
	p.Printf("frames:        %d\n", e.NumFrames())
	p.Printf("cue points:    %d\n", len(e.CuePoints()))

	if w := e.OpenWarning(); w.Warnings() != 0 {
		_, _ = fmt.Fprintf(os.Stderr, "warnings: %s\n", w)
	}

	names := e.ChannelNames()
	for i, name := range names {
		ch, err := e.Channel(i)
		if err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}

		editableTag := "editable"
		if !ch.Editable() {
			editableTag = "read-only"
		}

		p.Printf("channel %d:     %-20s %s, %d samples\n", i, name, editableTag, ch.NumSamples())
	}

	return nil
}

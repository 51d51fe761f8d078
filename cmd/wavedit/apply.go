package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/farcloser/waveforge"
	"github.com/farcloser/waveforge/editor"
)

var errBadChangeType = errors.New("--type must be multiply or add")

func applyCommand() *cli.Command {
	return &cli.Command{
		Name:      "apply",
		Usage:     "Apply one frequency-domain modification and save the result",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "channel",
				Required: true,
				Usage:    "channel index to modify",
			},
			&cli.StringFlag{
				Name:     "from-hz",
				Required: true,
				Usage:    "lower edge of the affected frequency range",
			},
			&cli.StringFlag{
				Name:     "to-hz",
				Required: true,
				Usage:    "upper edge of the affected frequency range",
			},
			&cli.StringFlag{
				Name:  "type",
				Value: "multiply",
				Usage: "multiply or add",
			},
			&cli.StringFlag{
				Name:     "amount",
				Required: true,
				Usage:    "multiply factor or add amount",
			},
			&cli.StringFlag{
				Name:  "smoothing",
				Value: "0",
				Usage: "envelope smoothing in [0,1]",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Required: true,
				Usage:    "output file path",
			},
		},
		Action: runApply,
	}
}

func runApply(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()
	output := cmd.String("output")

	changeType, err := parseChangeType(cmd.String("type"))
	if err != nil {
		return err
	}

	fromHz, err := strconv.ParseFloat(cmd.String("from-hz"), 64)
	if err != nil {
		return fmt.Errorf("--from-hz: %w", err)
	}

	toHz, err := strconv.ParseFloat(cmd.String("to-hz"), 64)
	if err != nil {
		return fmt.Errorf("--to-hz: %w", err)
	}

	amount, err := strconv.ParseFloat(cmd.String("amount"), 64)
	if err != nil {
		return fmt.Errorf("--amount: %w", err)
	}

	smoothing, err := strconv.ParseFloat(cmd.String("smoothing"), 64)
	if err != nil {
		return fmt.Errorf("--smoothing: %w", err)
	}

	if err := confirmOverwrite(output); err != nil {
		return err
	}

	e, err := editor.OpenFile(ctx, path, newLogger())
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer e.Close()

	channelIdx := int(cmd.Int("channel"))

	ch, err := e.Channel(channelIdx)
	if err != nil {
		return fmt.Errorf("selecting channel %d: %w", channelIdx, err)
	}

	if err := ch.Apply(fromHz, toHz, changeType, amount, smoothing); err != nil {
		return fmt.Errorf("applying modification: %w", err)
	}

	if err := e.WriteFileAs(output); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	return nil
}

func parseChangeType(s string) (waveforge.ChangeType, error) {
	switch strings.ToLower(s) {
	case "multiply":
		return waveforge.Multiply, nil
	case "add":
		return waveforge.Add, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, errBadChangeType)
	}
}

// confirmOverwrite prompts before clobbering an existing file, but only
// when stdin is an interactive terminal; piped/scripted invocations
// proceed without asking, matching how a diagnostic CLI is normally run
// in CI.
func confirmOverwrite(output string) error {
	if _, err := os.Stat(output); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s already exists, overwrite? [y/N] ", output)

	reply, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", err)
	}

	if strings.ToLower(strings.TrimSpace(reply)) != "y" {
		return errDeclinedByUser
	}

	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

type speedsParams struct {
	configParams
	cli.JSONOutput
	Overrides    settingsFlags `json:"-"`
	FastestFirst bool          `json:"-" flag:"fastest-first" desc:"list the shortest speed first"`
	All          bool          `json:"-" flag:"all" desc:"list the whole scale, ignoring --min and --max"`
}

type speedsOutput struct {
	Settings    exposure.Settings   `json:"settings"`
	Orientation shutter.Orientation `json:"orientation"`
	Count       int                 `json:"count"`
	Options     []shutter.Option    `json:"options"`
}

func speedsCommand() *cli.Command {
	var params speedsParams
	return &cli.Command{
		Name:    "speeds",
		Summary: "List the shutter speeds within the configured range",
		Description: `List the shutter speeds a bracket can use: the full-stop or
third-stop scale bounded by the shortest and longest usable speeds.
The list runs from the longest exposure to the shortest unless
--fastest-first is given.`,
		Usage:  "bracket speeds [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Description: "Full stops from 1/4000 to 1 second", Command: `bracket speeds --full-stops --min 1/4000 --max 1"`},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			base, err := env.settings()
			if err != nil {
				return err
			}
			settings, err := params.Overrides.apply(base)
			if err != nil {
				return err
			}

			table := settings.Table()
			if params.All {
				table = shutter.Table{Options: shutter.AllOptions(settings.IncludeThirdStops)}
			}
			if params.FastestFirst {
				table = table.Oriented(shutter.FastestFirst)
			}

			output := speedsOutput{
				Settings:    settings,
				Orientation: table.Orientation,
				Count:       table.Len(),
				Options:     table.Options,
			}
			if output.Options == nil {
				output.Options = []shutter.Option{}
			}
			if done, err := params.EmitJSON(output); done {
				return err
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(writer, "INDEX\tSPEED\tSECONDS\tSTOP\n")
			for i, option := range table.Options {
				stop := "third"
				if shutter.IsFullStop(option.Seconds) {
					stop = "full"
				}
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", i, option.Label, formatSeconds(option.Seconds), stop)
			}
			return writer.Flush()
		},
	}
}

type formatParams struct {
	cli.JSONOutput
	FullStops bool `json:"-" flag:"full-stops" desc:"snap to full stops only"`
}

// formatOutput reports seconds as null when the input is NaN or
// infinite.
type formatOutput struct {
	Seconds *float64 `json:"seconds"`
	Label   string   `json:"label"`
}

func formatCommand() *cli.Command {
	var params formatParams
	return &cli.Command{
		Name:    "format",
		Summary: "Render durations in seconds as shutter labels",
		Description: `Render each duration as the label of the nearest standard shutter
speed. Durations that are zero, negative, or not finite render as "-".`,
		Usage:  "bracket format [flags] <seconds>...",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Command: "bracket format 0.004 2.5"},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("at least one duration is required\n\nUsage: bracket format [flags] <seconds>...")
			}
			var errs []error
			outputs := make([]formatOutput, 0, len(args))
			for _, arg := range args {
				seconds, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					errs = append(errs, fmt.Errorf("%q is not a number", arg))
					continue
				}
				output := formatOutput{Label: shutter.Format(seconds, !params.FullStops)}
				if !math.IsNaN(seconds) && !math.IsInf(seconds, 0) {
					output.Seconds = &seconds
				}
				outputs = append(outputs, output)
			}
			if err := errors.Join(errs...); err != nil {
				return cli.Validation("%w", err)
			}
			if done, err := params.EmitJSON(outputs); done {
				return err
			}
			for _, output := range outputs {
				fmt.Println(output.Label)
			}
			return nil
		},
	}
}

type parseParams struct {
	cli.JSONOutput
}

type parseOutput struct {
	Text     string  `json:"text"`
	Seconds  float64 `json:"seconds"`
	Label    string  `json:"label"`
	FullStop bool    `json:"full_stop"`
}

func parseCommand() *cli.Command {
	var params parseParams
	return &cli.Command{
		Name:    "parse",
		Summary: "Read shutter speeds typed as labels, fractions or seconds",
		Description: `Convert shutter speeds to seconds. Accepts camera labels (1/250, 4"),
fractions (1/3), and plain seconds (0.5). Case, whitespace, quotes and
a trailing "s" are ignored.`,
		Usage:  "bracket parse [flags] <speed>...",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Command: `bracket parse 1/250 '4"' 0.3s`},
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("at least one speed is required\n\nUsage: bracket parse [flags] <speed>...")
			}
			var errs []error
			outputs := make([]parseOutput, 0, len(args))
			for _, arg := range args {
				seconds, ok := shutter.Parse(arg)
				if !ok {
					errs = append(errs, fmt.Errorf("cannot parse shutter speed %q", arg))
					continue
				}
				outputs = append(outputs, parseOutput{
					Text:     arg,
					Seconds:  seconds,
					Label:    shutter.Format(seconds, true),
					FullStop: shutter.IsFullStop(seconds),
				})
			}
			if err := errors.Join(errs...); err != nil {
				return cli.Validation("%w", err)
			}
			if done, err := params.EmitJSON(outputs); done {
				return err
			}
			writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, output := range outputs {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", output.Text, formatSeconds(output.Seconds), output.Label)
			}
			return writer.Flush()
		},
	}
}

// formatSeconds prints a duration compactly: "0.004", "30".
func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'g', 6, 64)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/shutter"
	"github.com/bureau-foundation/bracket/lib/window"
)

type sequenceParams struct {
	configParams
	cli.JSONOutput
	Overrides    settingsFlags `json:"-"`
	Anchor       string        `json:"-" flag:"anchor,a" desc:"which shot sits at the given speed: brightest, middle or darkest" default:"middle"`
	FastestFirst bool          `json:"-" flag:"fastest-first" desc:"walk the table from the shortest speed"`
}

type sequenceOutput struct {
	Settings    exposure.Settings   `json:"settings"`
	Anchor      bracket.Anchor      `json:"anchor"`
	Orientation shutter.Orientation `json:"orientation"`
	bracket.Result
	Labels []string `json:"labels"`
}

func sequenceCommand() *cli.Command {
	var params sequenceParams
	return &cli.Command{
		Name:    "sequence",
		Summary: "Compute the shutter speeds of one bracket",
		Description: `Compute a bracket anchored at a shutter speed. The speed snaps to the
nearest entry of the bounded table. Shots are listed in table order:
longest exposure first, or shortest first with --fastest-first. When
the bracket runs off either end of the table the end speed repeats and
a warning is printed.`,
		Usage:  "bracket sequence [flags] <speed>",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Description: "Seven shots two stops apart, darkest at 1/4000", Command: "bracket sequence -n 7 --ev 2 --anchor darkest 1/4000"},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one shutter speed is required\n\nUsage: bracket sequence [flags] <speed>")
			}
			anchorSeconds, ok := shutter.Parse(args[0])
			if !ok {
				return cli.Validation("cannot parse shutter speed %q", args[0])
			}
			anchor, err := bracket.ParseAnchor(params.Anchor)
			if err != nil {
				return cli.Validation("--anchor: %w", err)
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

			orientation := shutter.SlowestFirst
			if params.FastestFirst {
				orientation = shutter.FastestFirst
			}
			table := settings.Table().Oriented(orientation)
			result := bracket.Sequence(anchorSeconds, anchor, settings.BracketCount, settings.EVSpacing,
				table, settings.IncludeThirdStops)

			output := sequenceOutput{
				Settings:    settings,
				Anchor:      anchor,
				Orientation: orientation,
				Result:      result,
				Labels:      make([]string, len(result.Sequence)),
			}
			for i, seconds := range result.Sequence {
				output.Labels[i] = shutter.Format(seconds, settings.IncludeThirdStops)
			}
			logger.Debug("sequence computed",
				"anchor", anchor,
				"anchor_seconds", anchorSeconds,
				"settings", settings.Describe(),
				"clamped", result.Clamped(),
			)
			if done, err := params.EmitJSON(output); done {
				return err
			}

			fmt.Println(strings.Join(output.Labels, "  "))
			warnClamped(result.MinClamped, result.MaxClamped, settings)
			return nil
		},
	}
}

// warnClamped tells the user which end of the table a bracket ran into.
func warnClamped(minClamped, maxClamped bool, settings exposure.Settings) {
	if minClamped {
		fmt.Fprintf(os.Stderr, "warning: bracket reaches past the shortest speed %s; it repeats\n",
			shutter.Format(settings.MinShutterSeconds, settings.IncludeThirdStops))
	}
	if maxClamped {
		fmt.Fprintf(os.Stderr, "warning: bracket reaches past the longest speed %s; it repeats\n",
			shutter.Format(settings.MaxShutterSeconds, settings.IncludeThirdStops))
	}
}

type windowParams struct {
	configParams
	cli.JSONOutput
	Overrides settingsFlags `json:"-"`
	Row       int           `json:"-" flag:"row" desc:"centre the row with this index" default:"-1"`
	At        string        `json:"-" flag:"at" desc:"centre the row whose mid speed is nearest this speed (default 1/125)"`
	Rows      bool          `json:"-" flag:"rows" desc:"list every row instead of one window position"`
	Height    int           `json:"-" flag:"height" desc:"viewport height in rows" default:"9"`
}

type windowOutput struct {
	Settings exposure.Settings `json:"settings"`
	Viewport window.Viewport   `json:"viewport"`
	RowCount int               `json:"row_count"`
	window.Snapshot
	Rows []window.Row `json:"rows,omitempty"`
}

func windowCommand() *cli.Command {
	var params windowParams
	return &cli.Command{
		Name:    "window",
		Summary: "Show the sliding bracket window at one position",
		Description: `Show the bracket window the wheel displays: one row per mid speed
whose full bracket fits in the table, each with its darkest, mid and
brightest speed. Selects a row by index (--row) or by speed (--at) and
prints its bracket. --rows lists every row.`,
		Usage:  "bracket window [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Command: "bracket window --at 1/15"},
			{Command: "bracket window --full-stops --rows"},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if params.Height < 1 {
				return cli.Validation("--height must be at least 1")
			}
			if params.Row >= 0 && params.At != "" {
				return cli.Validation("--row and --at are mutually exclusive")
			}
			atSeconds := 1.0 / 125
			if params.At != "" {
				seconds, ok := shutter.Parse(params.At)
				if !ok {
					return cli.Validation("--at: cannot parse shutter speed %q", params.At)
				}
				atSeconds = seconds
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

			model := window.New(settings.Table(), settings.Step(), settings.Half())
			rowCount := len(model.Rows())
			index := params.Row
			if index < 0 {
				index = model.RowNearest(atSeconds)
			}
			if rowCount > 0 && index >= rowCount {
				return cli.Validation("--row %d out of range (0 to %d)", index, rowCount-1)
			}

			viewport := window.NewViewport(0, float64(params.Height), 1)
			viewport.ScrollY = window.ScrollOffsetForRow(index, viewport)
			output := windowOutput{
				Settings: settings,
				Viewport: viewport,
				RowCount: rowCount,
				Snapshot: model.At(viewport),
			}
			if params.Rows {
				output.Rows = model.Rows()
			}
			if done, err := params.EmitJSON(output); done {
				return err
			}

			if rowCount == 0 {
				fmt.Fprintf(os.Stderr, "no complete bracket fits: %s\n", settings.Describe())
				return &cli.ExitError{Code: 1}
			}
			if params.Rows {
				writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintf(writer, "ROW\tDARK\tMID\tBRIGHT\t\n")
				for i, row := range output.Rows {
					marker := ""
					if i == output.Centered {
						marker = "<"
					}
					fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", i, row.Dark.Label, row.Mid.Label, row.Bright.Label, marker)
				}
				return writer.Flush()
			}
			line := strings.Join(output.Labels, " · ")
			if marker := output.Scene.Marker(); marker != "" {
				line += "  " + marker
			}
			fmt.Printf("row %d of %d: %s\n", output.Centered, rowCount, line)
			return nil
		},
	}
}

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
	"text/tabwriter"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/plan"
	"github.com/bureau-foundation/bracket/lib/preset"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

type planParams struct {
	configParams
	cli.JSONOutput
	Overrides settingsFlags `json:"-"`
	Preset    string        `json:"-" flag:"preset,p" desc:"start from a named preset (fuzzy matched)"`
	Anchor    string        `json:"-" flag:"anchor,a" desc:"brightest, middle or darkest (default: the preset's, else middle)"`
}

type planOutput struct {
	plan.Plan
	Preset      string           `json:"preset,omitempty"`
	Fingerprint plan.Fingerprint `json:"fingerprint"`
}

func planCommand() *cli.Command {
	var params planParams
	return &cli.Command{
		Name:    "plan",
		Summary: "Plan a bracket shot by shot",
		Description: `Build a shoot plan: each shot in order from brightest to darkest with
its speed and exposure offset from the anchor shot. The plan's
fingerprint identifies the exact set of shots, so two plans with the
same fingerprint shoot identical brackets.

A preset supplies the anchor, anchor speed, and optionally the shot
count and spacing. A speed argument or explicit flags override it.`,
		Usage:  "bracket plan [flags] [<speed>]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Command: "bracket plan 1/60"},
			{Description: "Indoor preset with seven shots", Command: "bracket plan --preset indoor -n 7"},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return cli.Validation("at most one shutter speed is allowed\n\nUsage: bracket plan [flags] [<speed>]")
			}
			if len(args) == 0 && params.Preset == "" {
				return cli.Validation("a shutter speed or --preset is required\n\nUsage: bracket plan [flags] [<speed>]")
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			base, err := env.settings()
			if err != nil {
				return err
			}

			anchor := bracket.Middle
			var anchorSeconds float64
			var presetName string
			if params.Preset != "" {
				library, err := env.presets()
				if err != nil {
					return err
				}
				selected, err := library.Lookup(params.Preset)
				if errors.Is(err, preset.ErrNotFound) {
					return cli.NotFound("%w", err)
				}
				if err != nil {
					return cli.Internal("%w", err)
				}
				if anchorSeconds, err = selected.AnchorSeconds(); err != nil {
					return cli.Validation("preset %s: %w", selected.Name, err)
				}
				anchor = selected.Anchor
				presetName = selected.Name
				base = selected.Apply(base)
				logger.Debug("preset selected", "query", params.Preset, "preset", selected.Name, "source", selected.Source)
			}
			if len(args) == 1 {
				seconds, ok := shutter.Parse(args[0])
				if !ok {
					return cli.Validation("cannot parse shutter speed %q", args[0])
				}
				anchorSeconds = seconds
			}
			if params.Anchor != "" {
				if anchor, err = bracket.ParseAnchor(params.Anchor); err != nil {
					return cli.Validation("--anchor: %w", err)
				}
			}
			settings, err := params.Overrides.apply(base)
			if err != nil {
				return err
			}

			built, err := plan.Build(settings, anchor, anchorSeconds)
			if err != nil {
				return cli.Validation("%w", err)
			}
			fingerprint, err := built.Fingerprint()
			if err != nil {
				return cli.Internal("fingerprinting plan: %w", err)
			}
			if done, err := params.EmitJSON(planOutput{Plan: built, Preset: presetName, Fingerprint: fingerprint}); done {
				return err
			}

			header := fmt.Sprintf("%s, anchored %s at %s", settings.Describe(), anchor, built.AnchorLabel)
			if presetName != "" {
				header = presetName + ": " + header
			}
			fmt.Println(header)
			writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(writer, "SHOT\tSPEED\tEV\t\n")
			for _, shot := range built.Shots {
				marker := ""
				if shot.Anchor {
					marker = "anchor"
				}
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", shot.Position, shot.Label, formatEV(shot.EV), marker)
			}
			if err := writer.Flush(); err != nil {
				return err
			}
			fmt.Printf("fingerprint %s\n", fingerprint.Short())
			warnClamped(built.MinClamped, built.MaxClamped, settings)
			return nil
		},
	}
}

// formatEV renders a stop offset in whole and third stops: "+2 1/3",
// "-1", "0".
func formatEV(ev float64) string {
	thirds := int(math.Round(ev * 3))
	if thirds == 0 {
		return "0"
	}
	sign := "+"
	if thirds < 0 {
		sign = "-"
		thirds = -thirds
	}
	whole, remainder := thirds/3, thirds%3
	switch {
	case remainder == 0:
		return fmt.Sprintf("%s%d", sign, whole)
	case whole == 0:
		return fmt.Sprintf("%s%d/3", sign, remainder)
	default:
		return fmt.Sprintf("%s%d %d/3", sign, whole, remainder)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/preset"
)

func presetCommand() *cli.Command {
	return &cli.Command{
		Name:    "preset",
		Summary: "List and inspect bracket presets",
		Description: `Presets name a starting point for a bracket: an anchor speed and
position, and optionally a shot count and spacing. Built-in presets
cover common scenes; *.jsonc and *.json files in the presets directory
add to or replace them.`,
		Subcommands: []*cli.Command{
			presetListCommand(),
			presetShowCommand(),
		},
	}
}

type presetListParams struct {
	configParams
	cli.JSONOutput
}

type presetListEntry struct {
	preset.Preset
	Score int `json:"score,omitempty"`
}

func presetListCommand() *cli.Command {
	var params presetListParams
	return &cli.Command{
		Name:    "list",
		Summary: "List presets, optionally filtered by a fuzzy query",
		Usage:   "bracket preset list [flags] [<query>]",
		Params:  func() any { return &params },
		Examples: []cli.Example{
			{Command: "bracket preset list"},
			{Description: "Presets matching \"sny\", best first", Command: "bracket preset list sny"},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 1 {
				return cli.Validation("at most one query is allowed")
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			library, err := env.presets()
			if err != nil {
				return err
			}

			var entries []presetListEntry
			if len(args) == 1 {
				for _, match := range library.Search(args[0]) {
					entries = append(entries, presetListEntry{Preset: match.Preset, Score: match.Score})
				}
			} else {
				for _, item := range library.All() {
					entries = append(entries, presetListEntry{Preset: item})
				}
			}
			if done, err := params.EmitJSON(entries); done {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(os.Stderr, "no matching presets")
				return nil
			}

			writer := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(writer, "NAME\tANCHOR\tSPEED\tSHOTS\tEV\tSOURCE\n")
			for _, entry := range entries {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
					entry.Name, entry.Anchor, entry.AnchorSpeed,
					orDash(entry.BracketCount), orDash(entry.EVSpacing), entry.Source)
			}
			return writer.Flush()
		},
	}
}

type presetShowParams struct {
	configParams
	cli.JSONOutput
}

func presetShowCommand() *cli.Command {
	var params presetShowParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show one preset",
		Usage:   "bracket preset show [flags] <name>",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("exactly one preset name is required\n\nUsage: bracket preset show [flags] <name>")
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			library, err := env.presets()
			if err != nil {
				return err
			}
			selected, err := library.Lookup(args[0])
			if errors.Is(err, preset.ErrNotFound) {
				return cli.NotFound("%w", err)
			}
			if err != nil {
				return cli.Internal("%w", err)
			}
			if done, err := params.EmitJSON(selected); done {
				return err
			}

			var builder strings.Builder
			fmt.Fprintf(&builder, "%s\n", selected.Name)
			if selected.Description != "" {
				fmt.Fprintf(&builder, "  %s\n", selected.Description)
			}
			fmt.Fprintf(&builder, "  anchor:  %s at %s\n", selected.Anchor, selected.AnchorSpeed)
			fmt.Fprintf(&builder, "  shots:   %s\n", orDash(selected.BracketCount))
			fmt.Fprintf(&builder, "  spacing: %s\n", orDash(selected.EVSpacing))
			fmt.Fprintf(&builder, "  source:  %s\n", selected.Source)
			fmt.Print(builder.String())
			return nil
		},
	}
}

// orDash renders an optional override, "-" meaning "use the active
// setting".
func orDash(value int) string {
	if value == 0 {
		return "-"
	}
	return fmt.Sprint(value)
}

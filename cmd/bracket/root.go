// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/version"
)

func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "bracket",
		Description: `Compute shutter-speed exposure brackets.

A bracket is an odd number of shots spaced a fixed number of stops
apart, anchored at its brightest, middle, or darkest shot. Speeds come
from the standard full-stop and third-stop scales, bounded by the
camera's shortest and longest usable speeds.

Settings persist between runs. Configuration is read from --config or
$BRACKET_CONFIG when set.`,
		Subcommands: []*cli.Command{
			speedsCommand(),
			formatCommand(),
			parseCommand(),
			sequenceCommand(),
			windowCommand(),
			planCommand(),
			presetCommand(),
			settingsCommand(),
			wheelCommand(),
			serveCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Five shots around 1/125, three stops apart",
				Command:     "bracket sequence 1/125",
			},
			{
				Description: "Plan a bracket from the sunny preset",
				Command:     "bracket plan --preset sunny",
			},
			{
				Description: "Scroll through brackets interactively",
				Command:     "bracket wheel",
			},
		},
	}
}

type versionParams struct {
	cli.JSONOutput
}

func versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if done, err := params.EmitJSON(version.Current()); done {
				return err
			}
			fmt.Println(version.Full())
			return nil
		},
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/codec"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/settingsstore"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

func settingsCommand() *cli.Command {
	return &cli.Command{
		Name:    "settings",
		Summary: "Show or change the saved bracket settings",
		Description: `Bracket settings persist in the state directory and are shared by
every command, the wheel, and the HTTP server. A running wheel or
server picks up changes made here immediately.`,
		Subcommands: []*cli.Command{
			settingsShowCommand(),
			settingsSetCommand(),
			settingsResetCommand(),
		},
	}
}

type settingsOutput struct {
	Path      string            `json:"path"`
	Saved     bool              `json:"saved"`
	SavedAt   *time.Time        `json:"saved_at,omitempty"`
	Settings  exposure.Settings `json:"settings"`
	Effective exposure.Settings `json:"effective"`
	Camera    string            `json:"camera,omitempty"`
}

func newSettingsOutput(env *environment, record settingsstore.Record) (settingsOutput, error) {
	effective, err := env.config.Settings(record.Settings, env.camera)
	if err != nil {
		return settingsOutput{}, cli.NotFound("%w", err)
	}
	camera := env.camera
	if camera == "" {
		camera = env.config.Camera
	}
	output := settingsOutput{
		Path:      env.store.Path(),
		Saved:     !record.SavedAt.IsZero(),
		Settings:  record.Settings,
		Effective: effective,
		Camera:    camera,
	}
	if output.Saved {
		savedAt := record.SavedAt
		output.SavedAt = &savedAt
	}
	return output, nil
}

func printSettings(output settingsOutput) {
	settings := output.Settings
	fmt.Printf("shots:        %d\n", settings.BracketCount)
	fmt.Printf("spacing:      %d EV\n", settings.EVSpacing)
	fmt.Printf("shortest:     %s\n", shutter.Format(settings.MinShutterSeconds, true))
	fmt.Printf("longest:      %s\n", shutter.Format(settings.MaxShutterSeconds, true))
	fmt.Printf("third stops:  %t\n", settings.IncludeThirdStops)
	if output.Camera != "" {
		fmt.Printf("camera:       %s (%s)\n", output.Camera, output.Effective.Describe())
	}
	if output.SavedAt != nil {
		fmt.Printf("saved:        %s\n", output.SavedAt.Local().Format(time.DateTime))
	} else {
		fmt.Printf("saved:        never (defaults)\n")
	}
}

type settingsShowParams struct {
	configParams
	cli.JSONOutput
	Raw bool `json:"-" flag:"raw" desc:"dump the state file in CBOR diagnostic notation"`
}

func settingsShowCommand() *cli.Command {
	var params settingsShowParams
	return &cli.Command{
		Name:    "show",
		Summary: "Show the saved settings",
		Usage:   "bracket settings show [flags]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}

			if params.Raw {
				data, err := env.store.Raw()
				if err != nil {
					return cli.Internal("%w", err)
				}
				if data == nil {
					return cli.NotFound("no settings saved at %s", env.store.Path())
				}
				diagnostic, err := codec.Diagnose(data)
				if err != nil {
					return cli.Internal("decoding %s: %w", env.store.Path(), err)
				}
				fmt.Println(diagnostic)
				return nil
			}

			record, err := env.store.Load()
			if err != nil {
				return cli.Internal("%w", err)
			}
			output, err := newSettingsOutput(env, record)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(output); done {
				return err
			}
			printSettings(output)
			return nil
		},
	}
}

type settingsSetParams struct {
	configParams
	cli.JSONOutput
	Overrides settingsFlags `json:"-"`
}

func settingsSetCommand() *cli.Command {
	var params settingsSetParams
	return &cli.Command{
		Name:    "set",
		Summary: "Change one or more saved settings",
		Description: `Change saved settings. Only the flags given change; the rest keep
their saved values. Values are checked together, so --min must stay
shorter than --max after the change.`,
		Usage:  "bracket settings set [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Command: "bracket settings set -n 7 --ev 2"},
			{Command: `bracket settings set --min 1/4000 --max 30" --full-stops`},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			update, err := params.Overrides.update()
			if err != nil {
				return err
			}
			if update.IsEmpty() {
				return cli.Validation("nothing to change: pass at least one of --count, --ev, --min, --max, --third-stops, --full-stops")
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			current, err := env.store.Load()
			if err != nil {
				return cli.Internal("%w", err)
			}
			settings := update.Apply(current.Settings)
			if err := settings.Validate(); err != nil {
				return cli.Validation("%w", err)
			}
			record, err := env.store.Save(settings)
			if err != nil {
				return cli.Internal("%w", err)
			}
			logger.Info("settings saved", "settings", record.Settings.Describe())

			output, err := newSettingsOutput(env, record)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(output); done {
				return err
			}
			printSettings(output)
			return nil
		},
	}
}

type settingsResetParams struct {
	configParams
	cli.JSONOutput
}

func settingsResetCommand() *cli.Command {
	var params settingsResetParams
	return &cli.Command{
		Name:    "reset",
		Summary: "Forget the saved settings and use the defaults",
		Usage:   "bracket settings reset [flags]",
		Params:  func() any { return &params },
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			record, err := env.store.Reset()
			if err != nil {
				return cli.Internal("%w", err)
			}
			logger.Info("settings reset", "settings", record.Settings.Describe())

			output, err := newSettingsOutput(env, record)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(output); done {
				return err
			}
			printSettings(output)
			return nil
		},
	}
}

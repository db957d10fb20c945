// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/wheelui"
)

type wheelParams struct {
	configParams
	RowHeight int `json:"-" flag:"row-height" desc:"terminal lines per row (default from config)"`
}

func wheelCommand() *cli.Command {
	var params wheelParams
	return &cli.Command{
		Name:    "wheel",
		Summary: "Scroll through brackets interactively",
		Description: `Open a full-screen wheel of brackets. Each row is one bracket with its
darkest, middle and brightest speed; the row under the centre line is
spelled out in full at the bottom.

Scroll with the mouse wheel or arrow keys. "c" picks the shot count,
"e" the spacing, "m" and "M" the shortest and longest speeds, and "t"
toggles third stops. Changes are saved and show up in other running
wheels and servers.`,
		Usage:  "bracket wheel [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cli.Validation("the wheel needs a terminal; use \"bracket window\" for non-interactive output")
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			settings, err := env.settings()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			updates, err := env.store.Watch(ctx)
			if err != nil {
				return cli.Internal("watching settings: %w", err)
			}

			rowHeight := env.config.TUI.RowHeight
			if params.RowHeight > 0 {
				rowHeight = params.RowHeight
			}
			model := wheelui.NewModel(wheelui.Options{
				Settings:    settings,
				RowHeight:   rowHeight,
				VisibleRows: env.config.TUI.VisibleRows,
				Updates:     env.effective(ctx, updates),
				Save: func(changed exposure.Settings) error {
					// Persist only what the user changed, so camera
					// limits stay out of the saved settings.
					current, err := env.store.Load()
					if err != nil {
						return err
					}
					shown, err := env.config.Settings(current.Settings, env.camera)
					if err != nil {
						shown = current.Settings
					}
					update := exposure.Diff(shown, changed)
					if update.IsEmpty() {
						return nil
					}
					_, err = env.store.Update(update)
					return err
				},
				Logger: logger,
			})

			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
			)
			if _, err := program.Run(); err != nil && ctx.Err() == nil {
				return cli.Internal("wheel: %w", err)
			}
			return nil
		},
	}
}

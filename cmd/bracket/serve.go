// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
	"github.com/bureau-foundation/bracket/lib/httpapi"
)

type serveParams struct {
	configParams
	Listen          string        `json:"-" flag:"listen,l" desc:"address to listen on (default from config)"`
	ShutdownTimeout time.Duration `json:"-" flag:"shutdown-timeout" desc:"how long to drain requests on shutdown" default:"5s"`
}

func serveCommand() *cli.Command {
	var params serveParams
	return &cli.Command{
		Name:    "serve",
		Summary: "Serve the bracket calculator over HTTP",
		Description: `Serve a read-only JSON API over HTTP. Query parameters override the
saved settings per request; saved settings changes are picked up
without a restart. Stops cleanly on SIGINT or SIGTERM.

Routes: /healthz, /v1/settings, /v1/speeds, /v1/format, /v1/parse,
/v1/sequence, /v1/window, /v1/plan.`,
		Usage:  "bracket serve [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{Command: "bracket serve --listen 127.0.0.1:8417"},
			{Command: "curl 'http://127.0.0.1:8417/v1/sequence?speed=1/125&anchor=brightest'"},
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) > 0 {
				return cli.Validation("unexpected argument: %s", args[0])
			}
			env, err := params.open(logger)
			if err != nil {
				return err
			}
			settings, err := env.settings()
			if err != nil {
				return err
			}
			presets, err := env.presets()
			if err != nil {
				return err
			}

			handler := httpapi.NewHandler(httpapi.Options{
				Settings: settings,
				Presets:  presets,
				Logger:   logger,
			})
			updates, err := env.store.Watch(ctx)
			if err != nil {
				return cli.Internal("watching settings: %w", err)
			}
			go handler.Follow(ctx, env.effective(ctx, updates))

			address := params.Listen
			if address == "" {
				address = env.config.HTTP.Listen
			}
			server, err := httpapi.NewServer(httpapi.ServerConfig{
				Address:         address,
				Handler:         handler,
				ShutdownTimeout: params.ShutdownTimeout,
				Logger:          logger,
			})
			if err != nil {
				return cli.Validation("%w", err)
			}
			logger.Info("serving bracket API",
				"address", address,
				"settings", settings.Describe(),
				"presets", len(presets.Names()),
			)
			if err := server.Serve(ctx); err != nil {
				return cli.Internal("%w", err)
			}
			return nil
		},
	}
}

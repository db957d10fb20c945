// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LogLevel is the minimum level of every logger NewCommandLogger
// returns. Commands set it from configuration or --verbose once they
// have loaded it; loggers already handed out follow the change.
var LogLevel = new(slog.LevelVar)

// NewCommandLogger creates a structured logger on stderr. A terminal
// gets slog.TextHandler; pipes and redirects get slog.JSONHandler so
// scripts can parse the output.
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: LogLevel}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command bracket computes shutter-speed exposure brackets.
//
// Subcommands cover the bounded shutter table (speeds, format, parse),
// bracket computation (sequence, window, plan), presets, persisted
// settings, an interactive wheel, and an HTTP API. Run "bracket --help"
// for the full list.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bureau-foundation/bracket/cmd/bracket/cli"
)

func main() {
	err := run()
	if err == nil {
		return
	}

	// Commands that print their own output return an ExitError with
	// the desired exit code. Don't print a redundant "error:" line.
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		os.Exit(exitError.ExitCode())
	}

	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		os.Exit(toolError.ExitCode())
	}
	os.Exit(1)
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCommand().Execute(ctx, os.Args[1:])
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the command framework for the bracket binary.
//
// A [Command] is a node in a tree: either a group dispatching on its
// first positional argument to Subcommands, or a leaf with a Run
// function. Leaf flags are declared as a params struct with flag, desc
// and default tags and bound through [FlagsFromParams]; embedding
// [JSONOutput] adds --json. Unknown commands and flags get
// edit-distance suggestions.
//
// Errors returned from Run are plain errors or categorized
// [ToolError] values. [ExitError] requests a specific exit status
// without an error line, for commands that report their own failure.
package cli

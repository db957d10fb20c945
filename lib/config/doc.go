// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for bracket.
//
// Configuration is loaded from a single file specified by either the
// BRACKET_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. When neither is given the CLI runs on [Default].
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${BRACKET_ROOT}, and ${VAR:-default} patterns are expanded.
// No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- paths, log level, default settings, camera bodies,
//     TUI and HTTP options
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Settings] -- the exposure settings for a named camera
package config

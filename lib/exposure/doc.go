// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package exposure holds the user's bracketing settings and the rules
// that keep them within range.
//
// The computation packages (lib/shutter, lib/bracket, lib/window)
// trust the values they are given. This package is where untrusted
// values (a stored file, CLI flags, an HTTP query) become trusted:
// [Sanitize] replaces anything out of range with the default, the way
// the settings screen always has, and [Settings.Validate] reports the
// same problems as errors for callers that would rather reject input.
package exposure

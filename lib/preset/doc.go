// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package preset provides named starting points for a bracket: an
// anchor role, an anchor shutter speed, and optionally a shot count and
// EV spacing.
//
// Three presets are built in, one per scene the wheel marks (sunny,
// indoor, new-moon). Users add their own as JSONC files (JSON with //
// and /* */ comments and trailing commas) in the configured presets
// directory:
//
//	// presets/golden-hour.jsonc
//	{
//	    "description": "low sun, deep shadows",
//	    "anchor": "middle",
//	    "anchor_speed": "1/60",
//	    "bracket_count": 7,
//	}
//
// The file name without extension is the preset name unless the file
// sets "name". A user preset with the same name as a built-in replaces
// it.
//
// [Library.Lookup] resolves names exactly first and falls back to fzf's
// fuzzy matcher, so "nm" finds "new-moon".
package preset

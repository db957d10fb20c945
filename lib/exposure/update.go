// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exposure

import (
	"math"

	"github.com/bureau-foundation/bracket/lib/shutter"
)

// Update is a partial change to Settings. Nil fields are left alone.
type Update struct {
	BracketCount      *int     `json:"bracket_count,omitempty" yaml:"bracket_count,omitempty"`
	EVSpacing         *int     `json:"ev_spacing,omitempty" yaml:"ev_spacing,omitempty"`
	MinShutterSeconds *float64 `json:"min_shutter_seconds,omitempty" yaml:"min_shutter_seconds,omitempty"`
	MaxShutterSeconds *float64 `json:"max_shutter_seconds,omitempty" yaml:"max_shutter_seconds,omitempty"`
	IncludeThirdStops *bool    `json:"include_third_stops,omitempty" yaml:"include_third_stops,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.BracketCount == nil && u.EVSpacing == nil &&
		u.MinShutterSeconds == nil && u.MaxShutterSeconds == nil &&
		u.IncludeThirdStops == nil
}

// Apply overlays the non-nil fields of u onto settings without
// sanitizing.
func (u Update) Apply(settings Settings) Settings {
	if u.BracketCount != nil {
		settings.BracketCount = *u.BracketCount
	}
	if u.EVSpacing != nil {
		settings.EVSpacing = *u.EVSpacing
	}
	if u.MinShutterSeconds != nil {
		settings.MinShutterSeconds = *u.MinShutterSeconds
	}
	if u.MaxShutterSeconds != nil {
		settings.MaxShutterSeconds = *u.MaxShutterSeconds
	}
	if u.IncludeThirdStops != nil {
		settings.IncludeThirdStops = *u.IncludeThirdStops
	}
	return settings
}

// Merge applies u to current and sanitizes the result.
func Merge(current Settings, u Update) Settings {
	return Sanitize(u.Apply(current))
}

// Diff returns the Update that turns from into to: a field is set only
// where the two differ. Shutter bounds compare within shutter.Epsilon.
func Diff(from, to Settings) Update {
	var u Update
	if from.BracketCount != to.BracketCount {
		u.BracketCount = &to.BracketCount
	}
	if from.EVSpacing != to.EVSpacing {
		u.EVSpacing = &to.EVSpacing
	}
	if math.Abs(from.MinShutterSeconds-to.MinShutterSeconds) >= shutter.Epsilon {
		u.MinShutterSeconds = &to.MinShutterSeconds
	}
	if math.Abs(from.MaxShutterSeconds-to.MaxShutterSeconds) >= shutter.Epsilon {
		u.MaxShutterSeconds = &to.MaxShutterSeconds
	}
	if from.IncludeThirdStops != to.IncludeThirdStops {
		u.IncludeThirdStops = &to.IncludeThirdStops
	}
	return u
}

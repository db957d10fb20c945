// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exposure

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

// AllowedBracketCounts lists the shot counts a bracket may have.
var AllowedBracketCounts = []int{3, 5, 7, 9, 11}

// AllowedEVSpacings lists the stop spacings between adjacent shots.
var AllowedEVSpacings = []int{1, 2, 3}

// Settings configures bracket computation. Values are passed by value
// into every computation; nothing holds a shared copy.
type Settings struct {
	BracketCount      int     `json:"bracket_count" yaml:"bracket_count"`
	EVSpacing         int     `json:"ev_spacing" yaml:"ev_spacing"`
	MinShutterSeconds float64 `json:"min_shutter_seconds" yaml:"min_shutter_seconds"`
	MaxShutterSeconds float64 `json:"max_shutter_seconds" yaml:"max_shutter_seconds"`
	IncludeThirdStops bool    `json:"include_third_stops" yaml:"include_third_stops"`
}

// Default returns five shots three stops apart over 1/8000 to 30
// seconds with third stops enabled.
func Default() Settings {
	return Settings{
		BracketCount:      5,
		EVSpacing:         3,
		MinShutterSeconds: 1.0 / 8000,
		MaxShutterSeconds: 30,
		IncludeThirdStops: true,
	}
}

// Sanitize replaces out-of-range fields with their defaults. An
// unknown bracket count or EV spacing falls back individually. The
// shutter range is all or nothing: a non-finite bound is replaced by
// its default, and if the resulting pair is not 0 < min < max both
// bounds reset.
func Sanitize(settings Settings) Settings {
	defaults := Default()

	if !slices.Contains(AllowedBracketCounts, settings.BracketCount) {
		settings.BracketCount = defaults.BracketCount
	}
	if !slices.Contains(AllowedEVSpacings, settings.EVSpacing) {
		settings.EVSpacing = defaults.EVSpacing
	}
	if !isFinite(settings.MinShutterSeconds) {
		settings.MinShutterSeconds = defaults.MinShutterSeconds
	}
	if !isFinite(settings.MaxShutterSeconds) {
		settings.MaxShutterSeconds = defaults.MaxShutterSeconds
	}
	if settings.MinShutterSeconds <= 0 || settings.MaxShutterSeconds <= 0 ||
		settings.MinShutterSeconds >= settings.MaxShutterSeconds {
		settings.MinShutterSeconds = defaults.MinShutterSeconds
		settings.MaxShutterSeconds = defaults.MaxShutterSeconds
	}
	return settings
}

// Validate reports every field Sanitize would replace.
func (s Settings) Validate() error {
	var errs []error

	if !slices.Contains(AllowedBracketCounts, s.BracketCount) {
		errs = append(errs, fmt.Errorf("bracket_count %d must be one of %v", s.BracketCount, AllowedBracketCounts))
	}
	if !slices.Contains(AllowedEVSpacings, s.EVSpacing) {
		errs = append(errs, fmt.Errorf("ev_spacing %d must be one of %v", s.EVSpacing, AllowedEVSpacings))
	}
	switch {
	case !isFinite(s.MinShutterSeconds) || s.MinShutterSeconds <= 0:
		errs = append(errs, fmt.Errorf("min_shutter_seconds %v must be a positive number", s.MinShutterSeconds))
	case !isFinite(s.MaxShutterSeconds) || s.MaxShutterSeconds <= 0:
		errs = append(errs, fmt.Errorf("max_shutter_seconds %v must be a positive number", s.MaxShutterSeconds))
	case s.MinShutterSeconds >= s.MaxShutterSeconds:
		errs = append(errs, fmt.Errorf("min_shutter_seconds %v must be shorter than max_shutter_seconds %v",
			s.MinShutterSeconds, s.MaxShutterSeconds))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Step returns the table-index stride between adjacent shots.
func (s Settings) Step() int {
	return bracket.StepSize(s.EVSpacing, s.IncludeThirdStops)
}

// Half returns the number of shots on each side of the middle one.
func (s Settings) Half() int {
	return bracket.Half(s.BracketCount)
}

// DynamicRange is the span in EV between the darkest and brightest
// shots.
func (s Settings) DynamicRange() int {
	return (s.BracketCount - 1) * s.EVSpacing
}

// Table builds the bounded shutter table for the settings' range.
func (s Settings) Table() shutter.Table {
	return shutter.BuildTable(s.MinShutterSeconds, s.MaxShutterSeconds, s.IncludeThirdStops)
}

// CachedTable is Table served from cache.
func (s Settings) CachedTable(cache *shutter.TableCache) shutter.Table {
	return cache.Get(s.MinShutterSeconds, s.MaxShutterSeconds, s.IncludeThirdStops)
}

// Describe renders the settings in one line using shutter labels, for
// log lines and CLI headers.
func (s Settings) Describe() string {
	granularity := "full stops"
	if s.IncludeThirdStops {
		granularity = "third stops"
	}
	return fmt.Sprintf("%d shots, %d EV apart, %s to %s, %s",
		s.BracketCount, s.EVSpacing,
		shutter.Format(s.MinShutterSeconds, s.IncludeThirdStops),
		shutter.Format(s.MaxShutterSeconds, s.IncludeThirdStops),
		granularity)
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

// Shot is one exposure in a plan.
type Shot struct {
	// Position is 1-based, in shooting order from brightest to darkest.
	Position int     `json:"position"`
	Seconds  float64 `json:"seconds"`
	Label    string  `json:"label"`
	// EV is the exposure difference from the anchor shot in stops,
	// rounded to the nearest third. Positive values are brighter.
	EV float64 `json:"ev"`
	// Anchor marks the shot at the anchor position.
	Anchor bool `json:"anchor"`
}

// Plan is a computed bracket set.
type Plan struct {
	Settings      exposure.Settings `json:"settings"`
	Anchor        bracket.Anchor    `json:"anchor"`
	AnchorSeconds float64           `json:"anchor_seconds"`
	AnchorLabel   string            `json:"anchor_label"`
	Shots         []Shot            `json:"shots"`
	MinClamped    bool              `json:"min_clamped"`
	MaxClamped    bool              `json:"max_clamped"`
}

// Build computes the plan for settings with the anchor shot near
// anchorSeconds. The anchor snaps to the nearest speed in the settings'
// bounded table; AnchorSeconds reports the snapped value.
func Build(settings exposure.Settings, anchor bracket.Anchor, anchorSeconds float64) (Plan, error) {
	if err := settings.Validate(); err != nil {
		return Plan{}, fmt.Errorf("invalid settings: %w", err)
	}
	if math.IsNaN(anchorSeconds) || math.IsInf(anchorSeconds, 0) || anchorSeconds <= 0 {
		return Plan{}, fmt.Errorf("anchor speed %v must be a positive duration", anchorSeconds)
	}

	table := settings.Table()
	if table.Len() == 0 {
		return Plan{}, fmt.Errorf("no shutter speeds between %s and %s",
			shutter.Format(settings.MinShutterSeconds, true),
			shutter.Format(settings.MaxShutterSeconds, true))
	}

	snapped := table.Options[table.ClosestIndex(anchorSeconds)]
	result := bracket.Sequence(anchorSeconds, anchor, settings.BracketCount, settings.EVSpacing,
		table, settings.IncludeThirdStops)

	anchorPosition := anchor.Offset(settings.BracketCount)
	shots := make([]Shot, 0, len(result.Sequence))
	for i, seconds := range result.Sequence {
		shots = append(shots, Shot{
			Position: i + 1,
			Seconds:  seconds,
			Label:    shutter.Format(seconds, settings.IncludeThirdStops),
			EV:       stopsBetween(snapped.Seconds, seconds),
			Anchor:   i == anchorPosition,
		})
	}

	return Plan{
		Settings:      settings,
		Anchor:        anchor,
		AnchorSeconds: snapped.Seconds,
		AnchorLabel:   snapped.Label,
		Shots:         shots,
		MinClamped:    result.MinClamped,
		MaxClamped:    result.MaxClamped,
	}, nil
}

// Clamped reports whether the plan hit either end of the shutter range.
func (p Plan) Clamped() bool {
	return p.MinClamped || p.MaxClamped
}

// Labels returns the shot labels in order.
func (p Plan) Labels() []string {
	labels := make([]string, len(p.Shots))
	for i, shot := range p.Shots {
		labels[i] = shot.Label
	}
	return labels
}

// stopsBetween returns log2(to/from) rounded to the nearest third of a
// stop. Nominal shutter labels are not exact powers of two (1/125 is
// not 2^-7), so the raw ratio is only approximately a whole or third
// stop.
func stopsBetween(from, to float64) float64 {
	stops := math.Log2(to / from)
	rounded := math.Round(stops*3) / 3
	if rounded == 0 {
		return 0
	}
	return rounded
}

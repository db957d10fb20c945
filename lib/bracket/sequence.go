// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bracket

import "github.com/bureau-foundation/bracket/lib/shutter"

// Result is one computed bracket.
type Result struct {
	// Sequence holds bracketCount durations in table order. Positions
	// repeat when the walk was clamped.
	Sequence []float64 `json:"sequence"`
	// MinClamped is set when the walk ran past the shortest speed in
	// the table.
	MinClamped bool `json:"min_clamped"`
	// MaxClamped is set when the walk ran past the longest speed in
	// the table.
	MaxClamped bool `json:"max_clamped"`
}

// Clamped reports whether either end of the table was exhausted.
func (r Result) Clamped() bool {
	return r.MinClamped || r.MaxClamped
}

// StepSize converts an EV spacing into table indices: three per stop
// with third stops enabled, one otherwise, never less than one.
func StepSize(evSpacing int, includeThirdStops bool) int {
	perStop := 1
	if includeThirdStops {
		perStop = 3
	}
	return max(1, evSpacing*perStop)
}

// Half returns the number of shots on each side of the centre.
func Half(bracketCount int) int {
	return bracketCount / 2
}

// Sequence computes bracketCount speeds around anchorSeconds,
// evSpacing stops apart, reading from table in its own orientation.
//
// The anchor snaps to the nearest table entry. Shot i reads index
// anchorIndex + (i - anchor.Offset(bracketCount)) * step, clamped to
// the table. An empty table yields an empty Result.
func Sequence(anchorSeconds float64, anchor Anchor, bracketCount, evSpacing int, table shutter.Table, includeThirdStops bool) Result {
	if table.Len() == 0 {
		return Result{Sequence: []float64{}}
	}

	step := StepSize(evSpacing, includeThirdStops)
	anchorIndex := table.ClosestIndex(anchorSeconds)
	walk := WalkIndices(table.Len(), anchorIndex, -anchor.Offset(bracketCount), bracketCount, step, Clamp)

	result := Result{Sequence: make([]float64, 0, len(walk.Steps))}
	for _, walkStep := range walk.Steps {
		result.Sequence = append(result.Sequence, table.Options[walkStep.Index].Seconds)
	}

	// Index 0 is the longest duration in a slowest-first table and the
	// shortest in a fastest-first one.
	if table.Orientation == shutter.FastestFirst {
		result.MinClamped = walk.Underflow
		result.MaxClamped = walk.Overflow
	} else {
		result.MinClamped = walk.Overflow
		result.MaxClamped = walk.Underflow
	}
	return result
}

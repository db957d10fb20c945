// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bracket

import "fmt"

// ClampPolicy decides what a walk does with positions that fall
// outside the table.
type ClampPolicy int

const (
	// Clamp replaces an out-of-range index with the nearest edge
	// index. Every requested position produces a step.
	Clamp ClampPolicy = iota
	// Drop omits out-of-range positions, shortening the walk.
	Drop
)

// String returns "clamp" or "drop".
func (p ClampPolicy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	case Drop:
		return "drop"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// WalkStep is one emitted position of a walk.
type WalkStep struct {
	// Offset is the position relative to the origin, in strides.
	Offset int
	// Raw is origin + Offset*stride before any clamping.
	Raw int
	// Index is the table index to read. Equal to Raw unless the
	// policy clamped it.
	Index int
}

// Walk is the result of [WalkIndices].
type Walk struct {
	Steps []WalkStep
	// Underflow is set when any raw index was below 0.
	Underflow bool
	// Overflow is set when any raw index was above the last index.
	Overflow bool
}

// Indices returns the table indices of the emitted steps.
func (w Walk) Indices() []int {
	indices := make([]int, len(w.Steps))
	for position, step := range w.Steps {
		indices[position] = step.Index
	}
	return indices
}

// WalkIndices visits count positions starting at offset first
// (relative to origin) and moving stride indices per position, over a
// table of the given length. Underflow and Overflow are recorded for
// both policies. A table of length 0 yields an empty walk with neither
// flag set.
func WalkIndices(length, origin, first, count, stride int, policy ClampPolicy) Walk {
	var walk Walk
	if length <= 0 || count <= 0 {
		return walk
	}

	maxIndex := length - 1
	walk.Steps = make([]WalkStep, 0, count)
	for position := range count {
		offset := first + position
		raw := origin + offset*stride
		index := raw

		if raw < 0 {
			walk.Underflow = true
			index = 0
		}
		if raw > maxIndex {
			walk.Overflow = true
			index = maxIndex
		}
		if index != raw && policy == Drop {
			continue
		}
		walk.Steps = append(walk.Steps, WalkStep{Offset: offset, Raw: raw, Index: index})
	}
	return walk
}

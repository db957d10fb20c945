// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shutter

import (
	"fmt"
	"math"
)

// Orientation records which end of a [Table] index 0 refers to.
type Orientation int

const (
	// SlowestFirst orders by descending duration, the catalog order.
	// Index 0 is the longest (brightest) exposure.
	SlowestFirst Orientation = iota
	// FastestFirst orders by ascending duration. Index 0 is the
	// shortest (darkest) exposure.
	FastestFirst
)

// String returns "slowest-first" or "fastest-first".
func (o Orientation) String() string {
	switch o {
	case SlowestFirst:
		return "slowest-first"
	case FastestFirst:
		return "fastest-first"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// MarshalText encodes the orientation by name.
func (o Orientation) MarshalText() ([]byte, error) {
	switch o {
	case SlowestFirst, FastestFirst:
		return []byte(o.String()), nil
	default:
		return nil, fmt.Errorf("unknown orientation %d", int(o))
	}
}

// UnmarshalText accepts the names produced by MarshalText.
func (o *Orientation) UnmarshalText(text []byte) error {
	switch string(text) {
	case "slowest-first":
		*o = SlowestFirst
	case "fastest-first":
		*o = FastestFirst
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// Table is a contiguous slice of one catalog restricted to a camera's
// usable range. Tables are values: every transformation returns a new
// Table and leaves the receiver untouched.
type Table struct {
	Options     []Option    `json:"options"`
	Orientation Orientation `json:"orientation"`
}

// BuildTable keeps the catalog entries whose duration lies in
// [min, max], widened by [Epsilon] on both sides. min is raised to at
// least Epsilon and max to at least min, so inverted or non-positive
// bounds degrade to a single-point range rather than failing. The
// result is [SlowestFirst].
func BuildTable(min, max float64, includeThirdStops bool) Table {
	safeMin := math.Max(min, Epsilon)
	safeMax := math.Max(max, safeMin)

	var options []Option
	for _, option := range catalog(includeThirdStops) {
		if option.Seconds <= safeMax+Epsilon && option.Seconds >= safeMin-Epsilon {
			options = append(options, option)
		}
	}
	return Table{Options: options, Orientation: SlowestFirst}
}

// BuildSeconds is [BuildTable] reduced to the durations alone.
func BuildSeconds(min, max float64, includeThirdStops bool) []float64 {
	return BuildTable(min, max, includeThirdStops).Seconds()
}

// Len returns the number of options.
func (t Table) Len() int { return len(t.Options) }

// MaxIndex returns the last valid index, or 0 for an empty table.
func (t Table) MaxIndex() int {
	if len(t.Options) == 0 {
		return 0
	}
	return len(t.Options) - 1
}

// At returns the option at index and whether index was in range.
func (t Table) At(index int) (Option, bool) {
	if index < 0 || index >= len(t.Options) {
		return Option{}, false
	}
	return t.Options[index], true
}

// Seconds returns the durations in table order.
func (t Table) Seconds() []float64 {
	seconds := make([]float64, len(t.Options))
	for index, option := range t.Options {
		seconds[index] = option.Seconds
	}
	return seconds
}

// Labels returns the labels in table order.
func (t Table) Labels() []string {
	labels := make([]string, len(t.Options))
	for index, option := range t.Options {
		labels[index] = option.Label
	}
	return labels
}

// ClosestIndex returns the index of the option nearest to seconds.
func (t Table) ClosestIndex(seconds float64) int {
	return ClosestIndex(t.Options, seconds)
}

// Reversed returns a copy with the opposite orientation.
func (t Table) Reversed() Table {
	options := make([]Option, len(t.Options))
	for index, option := range t.Options {
		options[len(t.Options)-1-index] = option
	}
	orientation := FastestFirst
	if t.Orientation == FastestFirst {
		orientation = SlowestFirst
	}
	return Table{Options: options, Orientation: orientation}
}

// Oriented returns a copy of the table in the requested orientation.
func (t Table) Oriented(orientation Orientation) Table {
	if t.Orientation == orientation {
		options := make([]Option, len(t.Options))
		copy(options, t.Options)
		return Table{Options: options, Orientation: orientation}
	}
	return t.Reversed()
}

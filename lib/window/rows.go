// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package window

import (
	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

// Row is one line of the sliding view. MidIndex indexes the
// fastest-first display table.
type Row struct {
	MidIndex int            `json:"mid_index"`
	Dark     shutter.Option `json:"dark"`
	Mid      shutter.Option `json:"mid"`
	Bright   shutter.Option `json:"bright"`
}

// BuildRows materializes a row for every display index whose dark and
// bright neighbours, step*half indices away on either side, both exist.
// table is re-oriented fastest first if it is not already.
func BuildRows(table shutter.Table, step, half int) []Row {
	display := displayTable(table)
	reach := step * half
	rows := make([]Row, 0, display.Len())
	for index, option := range display.Options {
		dark, darkOK := display.At(index - reach)
		bright, brightOK := display.At(index + reach)
		if !darkOK || !brightOK {
			continue
		}
		rows = append(rows, Row{
			MidIndex: index,
			Dark:     dark,
			Mid:      option,
			Bright:   bright,
		})
	}
	return rows
}

// SequenceLabels returns the labels of the bracket centred on
// rows[centered], walking offsets -half through +half with step
// indices per offset over the fastest-first display table. Positions
// past either end are omitted, not repeated. Returns an empty slice
// when centered does not name a row.
func SequenceLabels(table shutter.Table, rows []Row, centered, half, step int) []string {
	if centered < 0 || centered >= len(rows) {
		return []string{}
	}
	display := displayTable(table)
	walk := bracket.WalkIndices(display.Len(), rows[centered].MidIndex, -half, 2*half+1, step, bracket.Drop)

	labels := make([]string, 0, len(walk.Steps))
	for _, walkStep := range walk.Steps {
		labels = append(labels, display.Options[walkStep.Index].Label)
	}
	return labels
}

// displayTable returns table in fastest-first order without copying
// when it already is.
func displayTable(table shutter.Table) shutter.Table {
	if table.Orientation == shutter.FastestFirst {
		return table
	}
	return table.Oriented(shutter.FastestFirst)
}

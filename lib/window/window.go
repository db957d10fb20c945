// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package window

import "github.com/bureau-foundation/bracket/lib/shutter"

// Window bundles a display table with its rows so callers that react
// to every scroll update do not rebuild them. A Window is immutable
// once built.
type Window struct {
	table shutter.Table
	rows  []Row
	step  int
	half  int
}

// New builds a Window over table. table may have either orientation;
// the window keeps a fastest-first copy.
func New(table shutter.Table, step, half int) Window {
	display := table.Oriented(shutter.FastestFirst)
	return Window{
		table: display,
		rows:  BuildRows(display, step, half),
		step:  step,
		half:  half,
	}
}

// Table returns the fastest-first display table.
func (w Window) Table() shutter.Table { return w.table }

// Rows returns the materialized rows. The slice is shared; do not
// modify it.
func (w Window) Rows() []Row { return w.rows }

// Step returns the index stride between adjacent shots.
func (w Window) Step() int { return w.step }

// Half returns the number of shots on each side of the mid speed.
func (w Window) Half() int { return w.half }

// Centered returns the index of the row under the viewport centre.
func (w Window) Centered(viewport Viewport) int {
	return CenteredRowIndex(w.rows, viewport)
}

// Active returns the row under the viewport centre, or false when the
// window has no rows.
func (w Window) Active(viewport Viewport) (Row, bool) {
	if len(w.rows) == 0 {
		return Row{}, false
	}
	return w.rows[w.Centered(viewport)], true
}

// RowNearest returns the index of the row whose mid speed is closest
// to seconds, or 0 when the window has no rows.
func (w Window) RowNearest(seconds float64) int {
	if len(w.rows) == 0 {
		return 0
	}
	mids := make([]shutter.Option, len(w.rows))
	for i, row := range w.rows {
		mids[i] = row.Mid
	}
	return shutter.ClosestIndex(mids, seconds)
}

// Labels returns the bracket labels for the row at index centered.
func (w Window) Labels(centered int) []string {
	return SequenceLabels(w.table, w.rows, centered, w.half, w.step)
}

// Snapshot is everything a view needs for one scroll position.
type Snapshot struct {
	Centered int      `json:"centered"`
	Row      *Row     `json:"row,omitempty"`
	Labels   []string `json:"labels"`
	Scene    Scene    `json:"scene,omitempty"`
}

// At computes the Snapshot for viewport.
func (w Window) At(viewport Viewport) Snapshot {
	snapshot := Snapshot{Labels: []string{}}
	row, ok := w.Active(viewport)
	if !ok {
		return snapshot
	}
	snapshot.Centered = w.Centered(viewport)
	snapshot.Row = &row
	snapshot.Labels = w.Labels(snapshot.Centered)
	snapshot.Scene = SceneFor(row.Dark.Seconds, row.Bright.Seconds)
	return snapshot
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bracket derives exposure-bracket sequences from a bounded
// shutter table.
//
// A sequence is bracketCount speeds spaced a fixed number of table
// indices apart around an anchor speed. The anchor's role decides
// where it sits inside the sequence: [Brightest] puts it first,
// [Darkest] last, [Middle] in the centre. One EV stop is one index in
// a full-stop table and three in a third-stop table ([StepSize]).
//
// When the walk runs off either end of the table the emitted index is
// clamped to the edge, so the sequence always has bracketCount entries
// and repeats the boundary speed. [Result.MinClamped] and
// [Result.MaxClamped] report which end was exhausted, in terms of
// shutter duration: MinClamped means the walk wanted a speed shorter
// than the table's shortest.
//
// The index walk itself is exposed as [WalkIndices] with an explicit
// [ClampPolicy]. The sequencer uses [Clamp]; the sliding-window model
// in lib/window uses [Drop], which omits out-of-range positions
// instead of repeating the edge.
package bracket

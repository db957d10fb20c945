// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package window computes the sliding dark/mid/bright view used for
// live, scroll-driven bracket selection.
//
// The display table runs fastest first: row i shows the speed at
// index i as "mid", the speed half*step indices faster as "dark" and
// the speed half*step indices slower as "bright". Rows whose dark or
// bright neighbour would fall off the table are not materialized at
// all; unlike the sequencer in lib/bracket, nothing is clamped.
//
// The viewport arithmetic is pure. Given a scroll offset, the
// viewport height, the row height and the top/bottom content padding
// ([ContentPadding]), [CenteredRowIndex] picks the row under the
// viewport centre and [SequenceLabels] lists the bracket for it. The
// functions hold no state, so a UI can call them on every scroll event
// and tests can drive them without any terminal.
package window

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package window

import "math"

// Viewport describes the scroll state of the row list. All values are
// in the same unit (pixels, terminal cells, or fractions thereof).
type Viewport struct {
	// ScrollY is the content offset at the top of the viewport.
	ScrollY float64 `json:"scroll_y"`
	// Height is the visible height of the list.
	Height float64 `json:"height"`
	// RowHeight is the height of one row.
	RowHeight float64 `json:"row_height"`
	// Padding is the blank space above the first row and below the
	// last; see ContentPadding.
	Padding float64 `json:"padding"`
}

// ContentPadding returns the top and bottom padding that lets the
// first and last rows scroll to the viewport centre.
func ContentPadding(viewportHeight, rowHeight float64) float64 {
	return math.Max(0, viewportHeight/2-rowHeight/2)
}

// NewViewport builds a Viewport with the standard ContentPadding.
func NewViewport(scrollY, height, rowHeight float64) Viewport {
	return Viewport{
		ScrollY:   scrollY,
		Height:    height,
		RowHeight: rowHeight,
		Padding:   ContentPadding(height, rowHeight),
	}
}

// CenteredRowIndex returns the index of the row whose centre is
// nearest the viewport centre, clamped to the row range. Returns 0
// when there are no rows or the viewport has not been measured yet
// (non-positive height or row height).
func CenteredRowIndex(rows []Row, viewport Viewport) int {
	return centeredIndex(len(rows), viewport)
}

func centeredIndex(rowCount int, viewport Viewport) int {
	if rowCount == 0 || viewport.Height <= 0 || viewport.RowHeight <= 0 {
		return 0
	}
	// Row i's centre sits at Padding + i*RowHeight + RowHeight/2.
	centerY := viewport.ScrollY + viewport.Height/2 - viewport.Padding - viewport.RowHeight/2
	raw := int(math.Round(centerY / viewport.RowHeight))
	return max(0, min(rowCount-1, raw))
}

// ScrollOffsetForRow returns the ScrollY that centres row index in the
// viewport. It is the inverse of CenteredRowIndex for in-range rows.
func ScrollOffsetForRow(index int, viewport Viewport) float64 {
	return float64(index)*viewport.RowHeight + viewport.RowHeight/2 + viewport.Padding - viewport.Height/2
}

// MaxScrollOffset returns the largest ScrollY that keeps content on
// screen: the padded content height minus the viewport height.
func MaxScrollOffset(rowCount int, viewport Viewport) float64 {
	content := float64(rowCount)*viewport.RowHeight + 2*viewport.Padding
	return math.Max(0, content-viewport.Height)
}

// SnapIndex returns the row a snapping wheel column settles on when a
// scroll ends at offsetY: round(offsetY / rowHeight). Returns 0 for a
// non-positive row height.
func SnapIndex(offsetY, rowHeight float64) int {
	if rowHeight <= 0 {
		return 0
	}
	return int(math.Round(offsetY / rowHeight))
}

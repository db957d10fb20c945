// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScrollbarThumb returns the first line and length of the thumb for a
// scrollbar of the given height. When everything fits, the thumb spans
// the full height.
func ScrollbarThumb(height, totalItems, visibleItems, scrollOffset int) (offset, size int) {
	if height <= 0 {
		return 0, 0
	}
	if totalItems <= visibleItems || totalItems <= 0 {
		return 0, height
	}

	size = max(1, height*visibleItems/totalItems)

	scrollableRange := totalItems - visibleItems
	trackRange := height - size
	if scrollableRange > 0 && trackRange > 0 {
		offset = scrollOffset * trackRange / scrollableRange
	}
	offset = min(max(offset, 0), height-size)
	return offset, size
}

// RenderScrollbar produces a single-column scrollbar of the given
// height. The thumb uses the accent color when focused.
func RenderScrollbar(theme Theme, height, totalItems, visibleItems, scrollOffset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.Accent
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	thumbOffset, thumbSize := ScrollbarThumb(height, totalItems, visibleItems, scrollOffset)
	lines := make([]string, height)
	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PickerOption is one selectable value.
type PickerOption struct {
	Label string
	Value string
}

// Picker is a small floating menu. It captures keyboard input while
// open; the owning model routes keys to it and reads Selected on enter.
type Picker struct {
	Title   string
	Options []PickerOption
	Cursor  int
	// Field names the setting the picker edits, so the owner knows
	// what to do with the selection.
	Field string
	// Visible caps the number of option lines shown at once. Zero
	// shows every option.
	Visible int
}

// NewPicker opens a picker with the cursor on the option whose Value
// equals current, or on the first option.
func NewPicker(field, title string, options []PickerOption, current string) *Picker {
	picker := &Picker{Title: title, Options: options, Field: field}
	for index, option := range options {
		if option.Value == current {
			picker.Cursor = index
			break
		}
	}
	return picker
}

// MoveUp moves the cursor up by one, wrapping to the bottom.
func (picker *Picker) MoveUp() {
	picker.Cursor--
	if picker.Cursor < 0 {
		picker.Cursor = len(picker.Options) - 1
	}
}

// MoveDown moves the cursor down by one, wrapping to the top.
func (picker *Picker) MoveDown() {
	picker.Cursor++
	if picker.Cursor >= len(picker.Options) {
		picker.Cursor = 0
	}
}

// Selected returns the highlighted option.
func (picker *Picker) Selected() PickerOption {
	return picker.Options[picker.Cursor]
}

// Width returns the rendered width in columns: one column of padding on
// each side of the widest of the title and " > label" lines.
func (picker *Picker) Width() int {
	inner := ansi.StringWidth(picker.Title)
	for _, option := range picker.Options {
		inner = max(inner, 2+ansi.StringWidth(option.Label))
	}
	return inner + 2
}

// Height returns the number of rendered lines.
func (picker *Picker) Height() int {
	return 1 + picker.visibleCount()
}

func (picker *Picker) visibleCount() int {
	if picker.Visible > 0 && picker.Visible < len(picker.Options) {
		return picker.Visible
	}
	return len(picker.Options)
}

// firstVisible returns the index of the first option line, keeping the
// cursor as close to the middle of the visible lines as the ends allow.
func (picker *Picker) firstVisible() int {
	visible := picker.visibleCount()
	first := picker.Cursor - visible/2
	return max(0, min(first, len(picker.Options)-visible))
}

// Render produces equal-width lines for SpliceOverlay: the title, then
// one line per option with the cursor line highlighted.
func (picker *Picker) Render(theme Theme) []string {
	innerWidth := picker.Width() - 2

	backgroundStyle := lipgloss.NewStyle().
		Background(theme.OverlayBackground).
		Foreground(theme.OverlayForeground)
	titleStyle := backgroundStyle.Bold(true).Foreground(theme.HeaderForeground)
	selectedStyle := lipgloss.NewStyle().
		Background(theme.SelectedBackground).
		Foreground(theme.Accent)

	pad := func(content string) string {
		return " " + content + strings.Repeat(" ", max(0, innerWidth-ansi.StringWidth(content))) + " "
	}

	lines := []string{titleStyle.Render(pad(picker.Title))}
	first := picker.firstVisible()
	for index := first; index < first+picker.visibleCount(); index++ {
		option := picker.Options[index]
		if index == picker.Cursor {
			lines = append(lines, selectedStyle.Render(pad("> "+option.Label)))
		} else {
			lines = append(lines, backgroundStyle.Render(pad("  "+option.Label)))
		}
	}
	return lines
}

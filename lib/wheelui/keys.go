// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wheelui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the wheel.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Settings.
	BracketCount key.Binding // Open the shot count picker.
	EVSpacing    key.Binding // Open the EV spacing picker.
	ThirdStops   key.Binding // Toggle third-stop stepping.
	MinShutter   key.Binding // Open the shortest speed picker.
	MaxShutter   key.Binding // Open the longest speed picker.

	// Picker navigation (active while a picker is open).
	Select  key.Binding
	Dismiss key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys. Up moves toward faster speeds.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "faster"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "slower"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "fastest"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "slowest"),
	),
	BracketCount: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "shots"),
	),
	EVSpacing: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "EV spacing"),
	),
	ThirdStops: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "third stops"),
	),
	MinShutter: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "shortest speed"),
	),
	MaxShutter: key.NewBinding(
		key.WithKeys("M"),
		key.WithHelp("M", "longest speed"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

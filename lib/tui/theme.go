// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for bracket's terminal UIs. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors. FaintText also marks third-stop speeds so full
	// stops stand out while scrolling.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Centered row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Column accents for the three wheel columns.
	DarkColumn   lipgloss.Color
	MidColumn    lipgloss.Color
	BrightColumn lipgloss.Color

	// Accent marks focus and the active anchor.
	Accent lipgloss.Color

	// Warning flags a clamped bracket.
	Warning lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Overlays.
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color

	// ChangedAccent tints the header after settings were reloaded.
	ChangedAccent lipgloss.Color
}

// SpeedColor returns the text color for a shutter label: NormalText for
// full stops, FaintText for third stops.
func (theme Theme) SpeedColor(fullStop bool) lipgloss.Color {
	if fullStop {
		return theme.NormalText
	}
	return theme.FaintText
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	DarkColumn:   lipgloss.Color("69"),  // deep blue
	MidColumn:    lipgloss.Color("252"), // neutral
	BrightColumn: lipgloss.Color("222"), // pale yellow

	Accent:  lipgloss.Color("220"), // amber
	Warning: lipgloss.Color("208"), // orange

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),

	ChangedAccent: lipgloss.Color("58"), // dark amber
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wheelui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/bracket/lib/shutter"
	"github.com/bureau-foundation/bracket/lib/tui"
	"github.com/bureau-foundation/bracket/lib/window"
)

// columnWidth fits the longest label ("1/256000") plus a scene marker.
const columnWidth = 12

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	viewport := model.viewport()
	snapshot := model.window.At(viewport)

	lines := []string{
		model.renderHeader(),
		model.renderColumnTitles(),
	}
	lines = append(lines, model.renderList(viewport, snapshot)...)
	lines = append(lines, model.renderBracket(snapshot), model.renderHelp())
	view := strings.Join(lines, "\n")

	if model.picker != nil {
		x, y := tui.CenterOrigin(model.width, model.height, model.picker.Width(), model.picker.Height())
		view = tui.SpliceOverlay(view, model.picker.Render(model.theme), x, y)
	}
	return view
}

func (model Model) renderHeader() string {
	style := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	if model.flash.Active(model.clock.Now()) {
		style = style.Background(model.theme.ChangedAccent)
	}
	header := " bracket  " + model.settings.Describe()
	return style.Render(ansi.Truncate(header, max(1, model.width), "…"))
}

func (model Model) renderColumnTitles() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	return style.Render(" " + pad("DARK") + pad("MID") + pad("BRIGHT"))
}

// renderList draws exactly listHeight lines with the scrollbar in the
// last column.
func (model Model) renderList(viewport window.Viewport, snapshot window.Snapshot) []string {
	height := model.listHeight()
	lines := make([]string, height)

	rows := model.window.Rows()
	for index, row := range rows {
		line := model.rowLine(index, viewport)
		if line < 0 || line >= height {
			continue
		}
		lines[line] = model.renderRow(row, index == snapshot.Centered)
	}

	visibleRows := max(1, height/model.rowHeight)
	scrollbar := strings.Split(tui.RenderScrollbar(model.theme, height, len(rows), visibleRows,
		snapshot.Centered, true), "\n")

	contentWidth := max(0, model.width-1)
	for index := range lines {
		content := ansi.Truncate(lines[index], contentWidth, "")
		gap := max(0, contentWidth-ansi.StringWidth(content))
		lines[index] = content + strings.Repeat(" ", gap) + scrollbar[index]
	}
	return lines
}

func (model Model) renderRow(row window.Row, centered bool) string {
	cell := func(option shutter.Option, accent lipgloss.Color, marker string) string {
		style := lipgloss.NewStyle().Foreground(model.theme.SpeedColor(!model.settings.IncludeThirdStops || shutter.IsFullStop(option.Seconds)))
		if centered {
			style = style.Foreground(accent).Bold(true)
		}
		text := option.Label
		if marker != "" {
			text += " " + marker
		}
		return style.Render(pad(text))
	}

	scene := window.SceneFor(row.Dark.Seconds, row.Bright.Seconds)
	line := " " + cell(row.Dark, model.theme.DarkColumn, "") +
		cell(row.Mid, model.theme.MidColumn, scene.Marker()) +
		cell(row.Bright, model.theme.BrightColumn, "")

	if centered {
		width := max(0, model.width-1)
		gap := max(0, width-ansi.StringWidth(line))
		line = lipgloss.NewStyle().Background(model.theme.SelectedBackground).
			Render(line + strings.Repeat(" ", gap))
	}
	return line
}

func (model Model) renderBracket(snapshot window.Snapshot) string {
	if snapshot.Row == nil {
		return lipgloss.NewStyle().Foreground(model.theme.Warning).
			Render(" no bracket fits between these limits")
	}
	summary := lipgloss.NewStyle().Foreground(model.theme.HelpText).
		Render(fmt.Sprintf(" %dx%d EV  DR %d ", model.settings.BracketCount,
			model.settings.EVSpacing, model.settings.DynamicRange()))
	style := lipgloss.NewStyle().Foreground(model.theme.Accent)
	return summary + style.Render(" "+strings.Join(snapshot.Labels, " · "))
}

func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	if model.notice != "" {
		return lipgloss.NewStyle().Foreground(model.theme.Warning).Render(" " + model.notice)
	}
	if model.picker != nil {
		return style.Render(" ↑↓ choose  Enter select  Esc cancel")
	}
	return style.Render(" q quit  ↑↓ scroll  c shots  e EV  t thirds  m/M range")
}

func pad(text string) string {
	width := ansi.StringWidth(text)
	if width >= columnWidth {
		return text + " "
	}
	return text + strings.Repeat(" ", columnWidth-width)
}

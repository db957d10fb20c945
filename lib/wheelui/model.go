// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wheelui

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/bracket/lib/clock"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/settingsstore"
	"github.com/bureau-foundation/bracket/lib/shutter"
	"github.com/bureau-foundation/bracket/lib/tui"
	"github.com/bureau-foundation/bracket/lib/window"
)

// SnapDelay is how long the wheel waits after the last mouse wheel
// notch before settling on the nearest row.
const SnapDelay = 150 * time.Millisecond

// chromeLines is the number of lines outside the row list: header,
// column titles, bracket footer, help line.
const chromeLines = 4

// Options configures a Model.
type Options struct {
	// Settings are the initial exposure settings.
	Settings exposure.Settings

	// RowHeight is the number of terminal lines per row. Values below
	// one are treated as one.
	RowHeight int

	// VisibleRows sizes the list until the first WindowSizeMsg
	// arrives. Defaults to 9.
	VisibleRows int

	// Updates, when non-nil, delivers settings saved elsewhere.
	Updates <-chan settingsstore.Record

	// Save, when non-nil, persists settings changed through the
	// pickers.
	Save func(exposure.Settings) error

	// Clock drives the change highlight. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives save failures. Defaults to discarding.
	Logger *slog.Logger
}

// Model is the bubbletea model for the bracket wheel.
type Model struct {
	settings    exposure.Settings
	window      window.Window
	rowHeight   int
	visibleRows int

	// scrollY is the content offset at the top of the row list, in
	// terminal lines.
	scrollY float64

	width  int
	height int
	ready  bool

	theme tui.Theme
	keys  KeyMap

	picker *tui.Picker

	updates <-chan settingsstore.Record
	save    func(exposure.Settings) error
	clock   clock.Clock
	logger  *slog.Logger

	flash       tui.Flash
	tickRunning bool

	// snapGeneration invalidates pending snap ticks when another wheel
	// notch arrives first.
	snapGeneration int

	notice string
}

type settingsUpdateMsg struct {
	record settingsstore.Record
}

type snapMsg struct {
	generation int
}

type flashTickMsg struct{}

type saveResultMsg struct {
	err error
}

// NewModel creates a Model. The wheel starts centred on the row whose
// mid speed is nearest 1/125, the usual daylight starting point.
func NewModel(options Options) Model {
	rowHeight := max(1, options.RowHeight)
	visibleRows := options.VisibleRows
	if visibleRows < 1 {
		visibleRows = 9
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}

	model := Model{
		settings:    options.Settings,
		rowHeight:   rowHeight,
		visibleRows: visibleRows,
		theme:       tui.DefaultTheme,
		keys:        DefaultKeyMap,
		updates:     options.Updates,
		save:        options.Save,
		clock:       options.Clock,
		logger:      options.Logger,
	}
	model.rebuild(1.0 / 125)
	return model
}

// Settings returns the settings the wheel is showing.
func (model Model) Settings() exposure.Settings { return model.settings }

// Snapshot returns the active row and bracket labels.
func (model Model) Snapshot() window.Snapshot {
	return model.window.At(model.viewport())
}

// Init implements tea.Model. Starts listening for settings updates when
// a channel was provided.
func (model Model) Init() tea.Cmd {
	if model.updates == nil {
		return nil
	}
	return listenForSettings(model.updates)
}

func listenForSettings(channel <-chan settingsstore.Record) tea.Cmd {
	return func() tea.Msg {
		record, ok := <-channel
		if !ok {
			return nil
		}
		return settingsUpdateMsg{record: record}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.picker != nil {
			return model.handlePickerKeys(message)
		}
		return model.handleKeys(message)

	case tea.MouseMsg:
		return model.handleMouse(message)

	case tea.WindowSizeMsg:
		centered := model.centered()
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.scrollToRow(centered)

	case snapMsg:
		if message.generation == model.snapGeneration {
			model.snap()
		}

	case settingsUpdateMsg:
		// Our own saves come back through the watcher unchanged.
		if message.record.Settings == model.settings {
			return model, listenForSettings(model.updates)
		}
		model.notice = ""
		model.applySettings(message.record.Settings)
		model.flash.Ignite(model.clock.Now())
		commands := []tea.Cmd{listenForSettings(model.updates)}
		if !model.tickRunning {
			model.tickRunning = true
			commands = append(commands, scheduleFlashTick())
		}
		return model, tea.Batch(commands...)

	case flashTickMsg:
		if model.flash.Active(model.clock.Now()) {
			return model, scheduleFlashTick()
		}
		model.tickRunning = false

	case saveResultMsg:
		if message.err != nil {
			model.notice = "save failed: " + message.err.Error()
		}
	}
	return model, nil
}

func scheduleFlashTick() tea.Cmd {
	return tea.Tick(tui.FlashTickInterval, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	centered := model.centered()
	page := max(1, model.listHeight()/model.rowHeight/2)

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(message, model.keys.Up):
		model.scrollToRow(centered - 1)
	case key.Matches(message, model.keys.Down):
		model.scrollToRow(centered + 1)
	case key.Matches(message, model.keys.PageUp):
		model.scrollToRow(centered - page)
	case key.Matches(message, model.keys.PageDown):
		model.scrollToRow(centered + page)
	case key.Matches(message, model.keys.Home):
		model.scrollToRow(0)
	case key.Matches(message, model.keys.End):
		model.scrollToRow(len(model.window.Rows()) - 1)
	case key.Matches(message, model.keys.BracketCount):
		model.picker = tui.NewPicker(fieldBracketCount, "Shots", countOptions(),
			strconv.Itoa(model.settings.BracketCount))
	case key.Matches(message, model.keys.EVSpacing):
		model.picker = tui.NewPicker(fieldEVSpacing, "EV spacing", spacingOptions(),
			strconv.Itoa(model.settings.EVSpacing))
	case key.Matches(message, model.keys.MinShutter):
		model.picker = model.speedPicker(fieldMinShutter, "Shortest speed", model.settings.MinShutterSeconds)
	case key.Matches(message, model.keys.MaxShutter):
		model.picker = model.speedPicker(fieldMaxShutter, "Longest speed", model.settings.MaxShutterSeconds)
	case key.Matches(message, model.keys.ThirdStops):
		updated := model.settings
		updated.IncludeThirdStops = !updated.IncludeThirdStops
		return model.changeSettings(updated)
	}
	return model, nil
}

func (model Model) handlePickerKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Dismiss), key.Matches(message, model.keys.Quit):
		model.picker = nil
	case key.Matches(message, model.keys.Up):
		model.picker.MoveUp()
	case key.Matches(message, model.keys.Down):
		model.picker.MoveDown()
	case key.Matches(message, model.keys.Select):
		field, value := model.picker.Field, model.picker.Selected().Value
		model.picker = nil
		updated, err := applyPickerValue(model.settings, field, value)
		if err != nil {
			model.notice = err.Error()
			return model, nil
		}
		return model.changeSettings(updated)
	}
	return model, nil
}

// Picker fields.
const (
	fieldBracketCount = "bracket_count"
	fieldEVSpacing    = "ev_spacing"
	fieldMinShutter   = "min_shutter_seconds"
	fieldMaxShutter   = "max_shutter_seconds"
)

// speedPickerLines is the number of speeds a range picker shows at once.
const speedPickerLines = 11

// speedPicker lists the whole catalog with the cursor on the speed
// nearest current.
func (model Model) speedPicker(field, title string, current float64) *tui.Picker {
	catalog := shutter.AllOptions(model.settings.IncludeThirdStops)
	options := make([]tui.PickerOption, len(catalog))
	for i, option := range catalog {
		options[i] = tui.PickerOption{Label: option.Label, Value: strconv.FormatFloat(option.Seconds, 'g', -1, 64)}
	}
	picker := tui.NewPicker(field, title, options, "")
	picker.Cursor = shutter.ClosestIndex(catalog, current)
	picker.Visible = speedPickerLines
	if model.ready {
		picker.Visible = max(3, min(speedPickerLines, model.height-2))
	}
	return picker
}

// applyPickerValue sets field to the picked value. A range that would
// leave the shortest speed at or above the longest is refused rather
// than reset.
func applyPickerValue(settings exposure.Settings, field, value string) (exposure.Settings, error) {
	switch field {
	case fieldBracketCount, fieldEVSpacing:
		number, err := strconv.Atoi(value)
		if err != nil {
			return settings, fmt.Errorf("%s: %w", field, err)
		}
		if field == fieldBracketCount {
			settings.BracketCount = number
		} else {
			settings.EVSpacing = number
		}
	case fieldMinShutter, fieldMaxShutter:
		seconds, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return settings, fmt.Errorf("%s: %w", field, err)
		}
		if field == fieldMinShutter {
			settings.MinShutterSeconds = seconds
		} else {
			settings.MaxShutterSeconds = seconds
		}
		if settings.MinShutterSeconds >= settings.MaxShutterSeconds {
			return settings, fmt.Errorf("shortest speed %s must be faster than longest %s",
				shutter.Format(settings.MinShutterSeconds, true),
				shutter.Format(settings.MaxShutterSeconds, true))
		}
	default:
		return settings, fmt.Errorf("unknown setting %q", field)
	}
	return settings, settings.Validate()
}

func (model Model) handleMouse(message tea.MouseMsg) (tea.Model, tea.Cmd) {
	if model.picker != nil {
		if message.Action == tea.MouseActionPress && message.Button == tea.MouseButtonLeft {
			model.picker = nil
		}
		return model, nil
	}

	switch message.Button {
	case tea.MouseButtonWheelUp:
		return model.scrollBy(-1)
	case tea.MouseButtonWheelDown:
		return model.scrollBy(1)
	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return model, nil
		}
		if row, ok := model.rowAtLine(message.Y - listStartY); ok {
			model.scrollToRow(row)
		}
	}
	return model, nil
}

// scrollBy moves the wheel by lines terminal lines and schedules a snap
// to the nearest row.
func (model Model) scrollBy(lines float64) (tea.Model, tea.Cmd) {
	viewport := model.viewport()
	model.scrollY = clamp(model.scrollY+lines, 0, window.MaxScrollOffset(len(model.window.Rows()), viewport))
	model.snapGeneration++
	generation := model.snapGeneration
	return model, tea.Tick(SnapDelay, func(time.Time) tea.Msg {
		return snapMsg{generation: generation}
	})
}

// snap settles the wheel on the row nearest the current offset.
func (model *Model) snap() {
	viewport := model.viewport()
	base := window.ScrollOffsetForRow(0, viewport)
	model.scrollToRow(window.SnapIndex(model.scrollY-base, viewport.RowHeight))
}

// changeSettings applies updated and, when a save function was given,
// persists it in the background.
func (model Model) changeSettings(updated exposure.Settings) (tea.Model, tea.Cmd) {
	updated = exposure.Sanitize(updated)
	if updated == model.settings {
		return model, nil
	}
	model.notice = ""
	model.applySettings(updated)
	if model.save == nil {
		return model, nil
	}
	save, logger := model.save, model.logger
	return model, func() tea.Msg {
		err := save(updated)
		if err != nil {
			logger.Error("saving settings failed", "error", err)
		}
		return saveResultMsg{err: err}
	}
}

// applySettings rebuilds the window for settings, keeping the row whose
// mid speed is nearest the current one centred.
func (model *Model) applySettings(settings exposure.Settings) {
	anchor := 1.0 / 125
	if row, ok := model.window.Active(model.viewport()); ok {
		anchor = row.Mid.Seconds
	}
	model.settings = settings
	model.rebuild(anchor)
}

func (model *Model) rebuild(midSeconds float64) {
	model.window = window.New(model.settings.Table(), model.settings.Step(), model.settings.Half())
	model.scrollToRow(model.window.RowNearest(midSeconds))
}

func (model *Model) scrollToRow(index int) {
	rows := len(model.window.Rows())
	if rows == 0 {
		model.scrollY = 0
		return
	}
	index = max(0, min(rows-1, index))
	viewport := model.viewport()
	model.scrollY = clamp(window.ScrollOffsetForRow(index, viewport), 0, window.MaxScrollOffset(rows, viewport))
}

func (model Model) centered() int {
	return model.window.Centered(model.viewport())
}

// listStartY is the screen line of the first row-list line.
const listStartY = 2

// listHeight returns the number of lines available to the row list.
// Before the first WindowSizeMsg it assumes visibleRows rows.
func (model Model) listHeight() int {
	if !model.ready {
		return model.visibleRows * model.rowHeight
	}
	return max(model.rowHeight, model.height-chromeLines)
}

func (model Model) viewport() window.Viewport {
	return window.NewViewport(model.scrollY, float64(model.listHeight()), float64(model.rowHeight))
}

// rowLine returns the list line on which row index draws its labels.
func (model Model) rowLine(index int, viewport window.Viewport) int {
	center := viewport.Padding + float64(index)*viewport.RowHeight + viewport.RowHeight/2 - viewport.ScrollY
	return int(math.Floor(center))
}

// rowAtLine maps a list line back to the row drawn nearest it.
func (model Model) rowAtLine(line int) (int, bool) {
	rows := len(model.window.Rows())
	if rows == 0 || line < 0 || line >= model.listHeight() {
		return 0, false
	}
	viewport := model.viewport()
	offset := float64(line) + viewport.ScrollY - viewport.Padding
	index := int(math.Floor(offset / viewport.RowHeight))
	if index < 0 || index >= rows {
		return 0, false
	}
	return index, true
}

func countOptions() []tui.PickerOption {
	options := make([]tui.PickerOption, len(exposure.AllowedBracketCounts))
	for i, count := range exposure.AllowedBracketCounts {
		options[i] = tui.PickerOption{Label: strconv.Itoa(count) + " shots", Value: strconv.Itoa(count)}
	}
	return options
}

func spacingOptions() []tui.PickerOption {
	options := make([]tui.PickerOption, len(exposure.AllowedEVSpacings))
	for i, spacing := range exposure.AllowedEVSpacings {
		options[i] = tui.PickerOption{Label: strconv.Itoa(spacing) + " EV", Value: strconv.Itoa(spacing)}
	}
	return options
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}

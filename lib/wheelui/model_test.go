// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wheelui

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/bracket/lib/clock"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/settingsstore"
	"github.com/bureau-foundation/bracket/lib/testutil"
)

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

// sized returns a model that has received a 60x24 window.
func sized(t *testing.T, options Options) Model {
	t.Helper()
	updated, _ := NewModel(options).Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	return updated.(Model)
}

func send(t *testing.T, model Model, messages ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var command tea.Cmd
	for _, message := range messages {
		var updated tea.Model
		updated, command = model.Update(message)
		model = updated.(Model)
	}
	return model, command
}

func TestNewModelCentersDaylight(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})

	snapshot := model.Snapshot()
	if snapshot.Row == nil {
		t.Fatal("no active row")
	}
	if snapshot.Row.Mid.Label != "1/125" {
		t.Errorf("mid = %s, want 1/125", snapshot.Row.Mid.Label)
	}
	want := []string{"1/8000", "1/1000", "1/125", "1/15", "1/2"}
	if !slices.Equal(snapshot.Labels, want) {
		t.Errorf("Labels = %v, want %v", snapshot.Labels, want)
	}
}

func TestKeyboardScrolling(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})

	model, _ = send(t, model, tea.KeyMsg{Type: tea.KeyDown})
	if mid := model.Snapshot().Row.Mid.Label; mid != "1/100" {
		t.Errorf("after down, mid = %s, want 1/100", mid)
	}

	model, _ = send(t, model, runes("G"))
	if mid := model.Snapshot().Row.Mid.Label; mid != "1/2" {
		t.Errorf("after G, mid = %s, want 1/2", mid)
	}

	// Scrolling past the ends stays on the last row.
	model, _ = send(t, model, tea.KeyMsg{Type: tea.KeyDown})
	if mid := model.Snapshot().Row.Mid.Label; mid != "1/2" {
		t.Errorf("past end, mid = %s, want 1/2", mid)
	}

	model, _ = send(t, model, runes("g"), tea.KeyMsg{Type: tea.KeyUp})
	if centered := model.Snapshot().Centered; centered != 0 {
		t.Errorf("past start, centered = %d, want 0", centered)
	}
}

func TestMouseWheelSnaps(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default(), RowHeight: 3})

	model, command := send(t, model,
		tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
		tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress},
	)
	if command == nil {
		t.Fatal("wheel scroll should schedule a snap")
	}
	testutil.RequireNear(t, model.scrollY, 2)

	// A stale snap from the first notch is ignored.
	model, _ = send(t, model, snapMsg{generation: model.snapGeneration - 1})
	testutil.RequireNear(t, model.scrollY, 2)

	model, _ = send(t, model, snapMsg{generation: model.snapGeneration})
	testutil.RequireNear(t, model.scrollY, 3)
	if centered := model.Snapshot().Centered; centered != 1 {
		t.Errorf("centered = %d after snap, want 1", centered)
	}
}

func TestPickerChangesBracketCount(t *testing.T) {
	var saved []exposure.Settings
	model := sized(t, Options{
		Settings: exposure.Default(),
		Save: func(settings exposure.Settings) error {
			saved = append(saved, settings)
			return nil
		},
	})

	model, _ = send(t, model, runes("c"))
	if model.picker == nil {
		t.Fatal("picker not opened")
	}
	if !strings.Contains(ansi.Strip(model.View()), "> 5 shots") {
		t.Error("picker should open on the current count")
	}

	model, command := send(t, model, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if model.picker != nil {
		t.Error("picker still open after select")
	}
	if model.Settings().BracketCount != 7 {
		t.Fatalf("BracketCount = %d, want 7", model.Settings().BracketCount)
	}
	if got := len(model.Snapshot().Labels); got != 7 {
		t.Errorf("got %d labels, want 7", got)
	}

	if command == nil {
		t.Fatal("expected a save command")
	}
	if result, ok := command().(saveResultMsg); !ok || result.err != nil {
		t.Errorf("save result = %#v", result)
	}
	if len(saved) != 1 || saved[0].BracketCount != 7 {
		t.Errorf("saved = %+v", saved)
	}
}

func TestPickerDismiss(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})
	model, _ = send(t, model, runes("e"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEscape})
	if model.picker != nil {
		t.Fatal("picker still open after Esc")
	}
	if model.Settings() != exposure.Default() {
		t.Errorf("dismissed picker changed settings: %+v", model.Settings())
	}
}

func TestRangePickers(t *testing.T) {
	var saved []exposure.Settings
	model := sized(t, Options{
		Settings: exposure.Default(),
		Save: func(settings exposure.Settings) error {
			saved = append(saved, settings)
			return nil
		},
	})

	model, _ = send(t, model, runes("M"))
	if model.picker == nil || model.picker.Selected().Label != `30"` {
		t.Fatalf("longest picker = %+v, want cursor on 30\"", model.picker)
	}
	if model.picker.Height() > 24 {
		t.Errorf("picker height %d does not fit the screen", model.picker.Height())
	}
	down := tea.KeyMsg{Type: tea.KeyDown}
	model, command := send(t, model, down, down, down, tea.KeyMsg{Type: tea.KeyEnter})
	if model.Settings().MaxShutterSeconds != 15 {
		t.Fatalf("MaxShutterSeconds = %v, want 15", model.Settings().MaxShutterSeconds)
	}
	if command == nil {
		t.Fatal("expected a save command")
	}
	command()

	model, _ = send(t, model, runes("m"))
	if model.picker.Selected().Label != "1/8000" {
		t.Fatalf("shortest picker cursor on %s, want 1/8000", model.picker.Selected().Label)
	}
	model, _ = send(t, model, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	testutil.RequireNear(t, model.Settings().MinShutterSeconds, 1.0/6400)
	if len(saved) != 1 || saved[0].MaxShutterSeconds != 15 {
		t.Errorf("saved = %+v", saved)
	}
}

func TestRangePickerRefusesInvertedRange(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})

	// Up from the first entry wraps to the shortest speed in the catalog.
	model, command := send(t, model, runes("M"), tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	if command != nil {
		t.Error("a refused range should not save")
	}
	if model.Settings() != exposure.Default() {
		t.Errorf("settings changed to %+v", model.Settings())
	}
	if view := ansi.Strip(model.View()); !strings.Contains(view, "must be faster than longest") {
		t.Errorf("view does not explain the refusal:\n%s", view)
	}
}

func TestToggleThirdStopsKeepsMidSpeed(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})
	model, _ = send(t, model, runes("t"))

	if model.Settings().IncludeThirdStops {
		t.Fatal("third stops still enabled")
	}
	snapshot := model.Snapshot()
	if snapshot.Row.Mid.Label != "1/125" {
		t.Errorf("mid = %s, want 1/125 kept across the toggle", snapshot.Row.Mid.Label)
	}
	want := []string{"1/8000", "1/1000", "1/125", "1/15", "1/2"}
	if !slices.Equal(snapshot.Labels, want) {
		t.Errorf("Labels = %v, want %v", snapshot.Labels, want)
	}
}

func TestSettingsUpdateFromWatcher(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC))
	updates := make(chan settingsstore.Record)
	model := sized(t, Options{Settings: exposure.Default(), Updates: updates, Clock: fake})

	if model.Init() == nil {
		t.Fatal("Init should listen for settings updates")
	}

	incoming := exposure.Default()
	incoming.BracketCount = 3
	model, command := send(t, model, settingsUpdateMsg{record: settingsstore.Record{Settings: incoming}})
	if command == nil {
		t.Fatal("expected listen and tick commands")
	}
	if model.Settings() != incoming {
		t.Errorf("Settings = %+v, want %+v", model.Settings(), incoming)
	}
	if !model.flash.Active(fake.Now()) {
		t.Error("header flash not ignited")
	}

	fake.Advance(3 * time.Second)
	model, command = send(t, model, flashTickMsg{})
	if command != nil || model.tickRunning {
		t.Error("tick should stop once the flash has faded")
	}
}

func TestOwnSaveEchoDoesNotFlash(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC))
	updates := make(chan settingsstore.Record)
	model := sized(t, Options{Settings: exposure.Default(), Updates: updates, Clock: fake})

	model, command := send(t, model, settingsUpdateMsg{record: settingsstore.Record{Settings: exposure.Default()}})
	if command == nil {
		t.Fatal("should keep listening")
	}
	if model.flash.Active(fake.Now()) || model.tickRunning {
		t.Error("unchanged settings should not flash")
	}
}

func TestSaveFailureShowsNotice(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})
	model, _ = send(t, model, saveResultMsg{err: errors.New("disk full")})
	if !strings.Contains(ansi.Strip(model.View()), "save failed: disk full") {
		t.Errorf("view does not show the failure:\n%s", ansi.Strip(model.View()))
	}
}

func TestViewLayout(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})
	view := ansi.Strip(model.View())
	lines := strings.Split(view, "\n")

	if len(lines) != 24 {
		t.Errorf("view has %d lines, want 24", len(lines))
	}
	if !strings.Contains(lines[0], "5 shots, 3 EV apart") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(view, "1/8000 · 1/1000 · 1/125 · 1/15 · 1/2") {
		t.Errorf("bracket footer missing:\n%s", view)
	}
	if !strings.Contains(view, "5x3 EV  DR 12") {
		t.Errorf("dynamic range missing from footer:\n%s", view)
	}
	if !strings.Contains(view, "☀️") {
		t.Errorf("sunny scene marker missing on the 1/125 row:\n%s", view)
	}
}

func TestClickSelectsRow(t *testing.T) {
	model := sized(t, Options{Settings: exposure.Default()})
	viewport := model.viewport()
	target := model.rowLine(2, viewport) + listStartY

	model, _ = send(t, model, tea.MouseMsg{X: 5, Y: target, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if centered := model.Snapshot().Centered; centered != 2 {
		t.Errorf("centered = %d after click, want 2", centered)
	}
}

func TestNotReadyView(t *testing.T) {
	if view := NewModel(Options{Settings: exposure.Default()}).View(); view != "Loading..." {
		t.Errorf("View() before sizing = %q", view)
	}
}

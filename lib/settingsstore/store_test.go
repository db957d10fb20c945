// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package settingsstore

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/bracket/lib/clock"
	"github.com/bureau-foundation/bracket/lib/codec"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/testutil"
	"golang.org/x/sys/unix"
)

var epoch = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	store := New(t.TempDir())

	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.Settings != exposure.Default() {
		t.Errorf("Settings = %+v, want defaults", record.Settings)
	}
	if !record.SavedAt.IsZero() {
		t.Errorf("SavedAt = %v, want zero", record.SavedAt)
	}
}

func TestWithDefaults(t *testing.T) {
	defaults := exposure.Settings{BracketCount: 3, EVSpacing: 1, MinShutterSeconds: 1.0 / 4000, MaxShutterSeconds: 4}
	store := New(t.TempDir(), WithDefaults(defaults))

	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.Settings != defaults {
		t.Errorf("Load = %+v, want configured defaults %+v", record.Settings, defaults)
	}

	testutil.WriteFileIn(t, store.Directory(), FileName, "not cbor at all")
	record, err = store.Load()
	if err != nil {
		t.Fatalf("Load corrupt: %v", err)
	}
	if record.Settings != defaults {
		t.Errorf("corrupt Load = %+v, want configured defaults", record.Settings)
	}

	record, err = store.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if record.Settings != defaults {
		t.Errorf("Reset = %+v, want configured defaults", record.Settings)
	}

	// Invalid defaults are sanitized like everything else.
	invalid := exposure.Default()
	invalid.BracketCount = 4
	invalid.MaxShutterSeconds = invalid.MinShutterSeconds
	store = New(t.TempDir(), WithDefaults(invalid))
	if record, _ := store.Load(); record.Settings != exposure.Default() {
		t.Errorf("Load with invalid defaults = %+v, want exposure.Default()", record.Settings)
	}
}

func TestLoadLayersStoredFieldsOverDefaults(t *testing.T) {
	defaults := exposure.Default()
	defaults.EVSpacing = 2
	store := New(t.TempDir(), WithDefaults(defaults))

	// A record written before include_third_stops existed.
	data, err := codec.Marshal(map[string]any{
		"settings": map[string]any{"bracket_count": 7},
		"saved_at": epoch,
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	testutil.WriteFileIn(t, store.Directory(), FileName, string(data))

	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := defaults
	want.BracketCount = 7
	if record.Settings != want {
		t.Errorf("Load = %+v, want %+v", record.Settings, want)
	}
	if !record.Settings.IncludeThirdStops {
		t.Error("IncludeThirdStops = false, want the default true")
	}
	if !record.SavedAt.Equal(epoch) {
		t.Errorf("SavedAt = %v, want %v", record.SavedAt, epoch)
	}
}

func TestSaveThenLoad(t *testing.T) {
	fake := clock.Fake(epoch)
	store := New(filepath.Join(t.TempDir(), "state"), WithClock(fake))

	settings := exposure.Settings{
		BracketCount:      7,
		EVSpacing:         1,
		MinShutterSeconds: 1.0 / 4000,
		MaxShutterSeconds: 2,
		IncludeThirdStops: false,
	}
	saved, err := store.Save(settings)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if saved.Settings != settings {
		t.Errorf("saved Settings = %+v, want %+v", saved.Settings, settings)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Settings != settings {
		t.Errorf("loaded Settings = %+v, want %+v", loaded.Settings, settings)
	}
	if !loaded.SavedAt.Equal(epoch) {
		t.Errorf("SavedAt = %v, want %v", loaded.SavedAt, epoch)
	}
}

func TestSaveSanitizes(t *testing.T) {
	store := New(t.TempDir())
	record, err := store.Save(exposure.Settings{BracketCount: 4, EVSpacing: 9, MinShutterSeconds: 2, MaxShutterSeconds: 1})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := exposure.Default()
	want.IncludeThirdStops = false
	if record.Settings != want {
		t.Errorf("Settings = %+v, want %+v", record.Settings, want)
	}
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	directory := t.TempDir()
	store := New(directory)
	for range 3 {
		if _, err := store.Save(exposure.Default()); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != FileName {
		var names []string
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Errorf("directory contains %v, want only %s", names, FileName)
	}
}

func TestLoadCorruptFallsBackToDefaults(t *testing.T) {
	directory := t.TempDir()
	testutil.WriteFileIn(t, directory, FileName, "\xff\x00 not cbor")

	var logs bytes.Buffer
	store := New(directory, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	record, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.Settings != exposure.Default() {
		t.Errorf("Settings = %+v, want defaults", record.Settings)
	}
	if !strings.Contains(logs.String(), "settings file is corrupt") {
		t.Errorf("expected a corruption warning, got log %q", logs.String())
	}
}

func TestLoadSanitizesStoredValues(t *testing.T) {
	directory := t.TempDir()
	data, err := codec.Marshal(Record{
		Settings: exposure.Settings{BracketCount: 6, EVSpacing: 2, MinShutterSeconds: 0.001, MaxShutterSeconds: 1},
		SavedAt:  epoch,
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(directory, FileName), data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	record, err := New(directory).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if record.Settings.BracketCount != 5 {
		t.Errorf("BracketCount = %d, want sanitized 5", record.Settings.BracketCount)
	}
	if record.Settings.EVSpacing != 2 {
		t.Errorf("EVSpacing = %d, want 2 preserved", record.Settings.EVSpacing)
	}
}

func TestUpdateMergesPartialChange(t *testing.T) {
	store := New(t.TempDir())
	count := 9
	record, err := store.Update(exposure.Update{BracketCount: &count})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want := exposure.Default()
	want.BracketCount = 9
	if record.Settings != want {
		t.Errorf("Settings = %+v, want %+v", record.Settings, want)
	}
}

func TestReset(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Save(exposure.Settings{BracketCount: 3, EVSpacing: 1, MinShutterSeconds: 0.01, MaxShutterSeconds: 1}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	record, err := store.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if record.Settings != exposure.Default() {
		t.Errorf("Reset returned %+v, want defaults", record.Settings)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Errorf("state file still present after Reset: %v", err)
	}

	// Resetting an already-empty store is not an error.
	if _, err := store.Reset(); err != nil {
		t.Errorf("second Reset: %v", err)
	}
}

func TestRaw(t *testing.T) {
	store := New(t.TempDir())
	raw, err := store.Raw()
	if err != nil || raw != nil {
		t.Fatalf("Raw() on empty store = %v, %v; want nil, nil", raw, err)
	}

	if _, err := store.Save(exposure.Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err = store.Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	diagnostic, err := codec.Diagnose(raw)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, `"bracket_count"`) {
		t.Errorf("diagnostic %s missing bracket_count", diagnostic)
	}
}

func TestEventsMention(t *testing.T) {
	event := func(name string) []byte {
		padded := len(name) + 1
		if remainder := padded % 16; remainder != 0 {
			padded += 16 - remainder
		}
		buffer := make([]byte, unix.SizeofInotifyEvent+padded)
		binary.NativeEndian.PutUint32(buffer[4:8], unix.IN_MOVED_TO)
		binary.NativeEndian.PutUint32(buffer[12:16], uint32(padded))
		copy(buffer[unix.SizeofInotifyEvent:], name)
		return buffer
	}

	var buffer []byte
	buffer = append(buffer, event(".settings.v1.cbor.123.tmp")...)
	if eventsMention(buffer, FileName) {
		t.Error("temporary file event matched the state file")
	}

	buffer = append(buffer, event(FileName)...)
	if !eventsMention(buffer, FileName) {
		t.Error("state file event not matched")
	}

	if eventsMention(buffer[:10], FileName) {
		t.Error("truncated buffer matched")
	}
}

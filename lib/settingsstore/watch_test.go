// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package settingsstore

import (
	"context"
	"testing"
	"time"

	"github.com/bureau-foundation/bracket/lib/clock"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/testutil"
)

func TestWatchDeliversSavedSettings(t *testing.T) {
	directory := t.TempDir()
	fake := clock.Fake(epoch)
	watcher := New(directory, WithClock(fake))
	writer := New(directory)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates, err := watcher.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	settings := exposure.Settings{BracketCount: 3, EVSpacing: 2, MinShutterSeconds: 1.0 / 1000, MaxShutterSeconds: 1, IncludeThirdStops: true}
	if _, err := writer.Save(settings); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fake.WaitForTimers(1)
	fake.Advance(DebounceInterval)

	record := testutil.RequireReceive(t, updates, 5*time.Second, "waiting for reload after save")
	if record.Settings != settings {
		t.Errorf("reloaded %+v, want %+v", record.Settings, settings)
	}
}

func TestWatchDeliversDefaultsAfterReset(t *testing.T) {
	directory := t.TempDir()
	writer := New(directory)
	if _, err := writer.Save(exposure.Settings{BracketCount: 11, EVSpacing: 1, MinShutterSeconds: 0.001, MaxShutterSeconds: 8}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fake := clock.Fake(epoch)
	watcher := New(directory, WithClock(fake))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates, err := watcher.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if _, err := writer.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	fake.WaitForTimers(1)
	fake.Advance(DebounceInterval)

	record := testutil.RequireReceive(t, updates, 5*time.Second, "waiting for reload after reset")
	if record.Settings != exposure.Default() {
		t.Errorf("reloaded %+v, want defaults", record.Settings)
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	updates, err := New(t.TempDir()).Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-updates:
		if ok {
			t.Fatal("received an update after cancel with no file changes")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("updates channel not closed after cancel")
	}
}

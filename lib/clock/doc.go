// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// The settings store stamps every save with Clock.Now and its watcher
// debounces bursts of filesystem events with Clock.After. Tests
// substitute Fake() so saved_at values are exact and debounce windows
// elapse only when the test says so:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	store := settingsstore.New(dir, settingsstore.WithClock(c))
//	// ... trigger a file change ...
//	c.WaitForTimers(1)
//	c.Advance(settingsstore.DebounceInterval)
package clock

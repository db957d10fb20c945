// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for bracket packages.
//
// [RequireNear] and [RequireSequence] compare shutter durations with
// a tolerance. Durations like 1/3 or 1/13 are not exactly
// representable, so tests never compare them with ==.
//
// [WriteFile] writes a fixture into a per-test temporary directory and
// returns its path, for config, preset and state-file tests.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) for tests that wait
// on watcher channels.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no bracket-internal dependencies.
package testutil

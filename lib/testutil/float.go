// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import "math"

// Tolerance is the comparison slack used by RequireNear. It matches
// the tolerance the shutter package uses for catalog lookups.
const Tolerance = 1e-6

// RequireNear fails the test unless got is within Tolerance of want.
func RequireNear(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want float64, msgAndArgs ...any) {
	t.Helper()
	if math.Abs(got-want) > Tolerance {
		t.Fatalf("got %v, want %v: %s", got, want, formatMessage(msgAndArgs))
	}
}

// RequireSequence fails the test unless got and want have the same
// length and every pair is within Tolerance.
func RequireSequence(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want []float64, msgAndArgs ...any) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d values %v, want %d values %v: %s", len(got), got, len(want), want, formatMessage(msgAndArgs))
	}
	for index := range want {
		if math.Abs(got[index]-want[index]) > Tolerance {
			t.Fatalf("index %d: got %v, want %v (full: %v vs %v): %s",
				index, got[index], want[index], got, want, formatMessage(msgAndArgs))
		}
	}
}

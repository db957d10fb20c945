// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bracket

import (
	"slices"
	"testing"
)

func TestWalkIndicesInRange(t *testing.T) {
	walk := WalkIndices(10, 5, -1, 3, 2, Clamp)
	if got := walk.Indices(); !slices.Equal(got, []int{3, 5, 7}) {
		t.Errorf("indices = %v, want [3 5 7]", got)
	}
	if walk.Underflow || walk.Overflow {
		t.Errorf("unexpected flags: underflow=%v overflow=%v", walk.Underflow, walk.Overflow)
	}
}

func TestWalkIndicesClamp(t *testing.T) {
	walk := WalkIndices(5, 1, -2, 5, 1, Clamp)
	// Raw: -1 0 1 2 3.
	if got := walk.Indices(); !slices.Equal(got, []int{0, 0, 1, 2, 3}) {
		t.Errorf("indices = %v, want [0 0 1 2 3]", got)
	}
	if !walk.Underflow || walk.Overflow {
		t.Errorf("flags: underflow=%v overflow=%v, want true/false", walk.Underflow, walk.Overflow)
	}
	if walk.Steps[0].Raw != -1 || walk.Steps[0].Offset != -2 {
		t.Errorf("first step = %+v", walk.Steps[0])
	}
}

func TestWalkIndicesDrop(t *testing.T) {
	walk := WalkIndices(5, 3, -2, 5, 1, Drop)
	// Raw: 1 2 3 4 5; 5 is dropped.
	if got := walk.Indices(); !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("indices = %v, want [1 2 3 4]", got)
	}
	if walk.Underflow || !walk.Overflow {
		t.Errorf("flags: underflow=%v overflow=%v, want false/true", walk.Underflow, walk.Overflow)
	}
}

func TestWalkIndicesEmpty(t *testing.T) {
	walk := WalkIndices(0, 0, -2, 5, 1, Clamp)
	if len(walk.Steps) != 0 || walk.Underflow || walk.Overflow {
		t.Errorf("empty table walk = %+v", walk)
	}
	if walk := WalkIndices(5, 0, 0, 0, 1, Clamp); len(walk.Steps) != 0 {
		t.Errorf("zero-count walk has %d steps", len(walk.Steps))
	}
}

func TestClampPolicyString(t *testing.T) {
	if Clamp.String() != "clamp" || Drop.String() != "drop" {
		t.Errorf("names = %s, %s", Clamp, Drop)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"math"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/testutil"
)

func TestBuildMiddleAnchor(t *testing.T) {
	result, err := Build(exposure.Default(), bracket.Middle, 1.0/125)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantLabels := []string{"1/2", "1/15", "1/125", "1/1000", "1/8000"}
	if labels := result.Labels(); !slices.Equal(labels, wantLabels) {
		t.Errorf("Labels() = %v, want %v", labels, wantLabels)
	}

	wantEV := []float64{6, 3, 0, -3, -6}
	for i, shot := range result.Shots {
		if shot.Position != i+1 {
			t.Errorf("shot %d Position = %d", i, shot.Position)
		}
		testutil.RequireNear(t, shot.EV, wantEV[i], "shot %d EV", i+1)
		if shot.Anchor != (i == 2) {
			t.Errorf("shot %d Anchor = %v", i+1, shot.Anchor)
		}
	}
	if result.AnchorLabel != "1/125" {
		t.Errorf("AnchorLabel = %q, want 1/125", result.AnchorLabel)
	}
	if result.Clamped() {
		t.Errorf("unexpected clamp: %+v", result)
	}
}

func TestBuildBrightestFullStops(t *testing.T) {
	settings := exposure.Settings{
		BracketCount:      3,
		EVSpacing:         1,
		MinShutterSeconds: 1.0 / 8000,
		MaxShutterSeconds: 30,
		IncludeThirdStops: false,
	}
	result, err := Build(settings, bracket.Brightest, 1.0/60)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if labels := result.Labels(); !slices.Equal(labels, []string{"1/60", "1/125", "1/250"}) {
		t.Errorf("Labels() = %v", labels)
	}
	for i, want := range []float64{0, -1, -2} {
		testutil.RequireNear(t, result.Shots[i].EV, want, "shot %d EV", i+1)
	}
	if !result.Shots[0].Anchor {
		t.Error("first shot should carry the brightest anchor")
	}
}

func TestBuildSnapsAnchor(t *testing.T) {
	result, err := Build(exposure.Default(), bracket.Middle, 0.0079)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	testutil.RequireNear(t, result.AnchorSeconds, 1.0/125)
	if result.AnchorLabel != "1/125" {
		t.Errorf("AnchorLabel = %q, want 1/125", result.AnchorLabel)
	}
}

func TestBuildReportsClamp(t *testing.T) {
	result, err := Build(exposure.Default(), bracket.Brightest, 1.0/8000)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !result.MinClamped || result.MaxClamped {
		t.Errorf("MinClamped = %v, MaxClamped = %v; want true, false", result.MinClamped, result.MaxClamped)
	}
	for _, shot := range result.Shots {
		if shot.Label != "1/8000" {
			t.Errorf("shot %d = %s, want clamped 1/8000", shot.Position, shot.Label)
		}
	}
}

func TestBuildRejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		settings exposure.Settings
		anchor   float64
		want     string
	}{
		{"invalid count", exposure.Settings{BracketCount: 4, EVSpacing: 1, MinShutterSeconds: 0.001, MaxShutterSeconds: 1}, 0.01, "bracket_count"},
		{"inverted range", exposure.Settings{BracketCount: 3, EVSpacing: 1, MinShutterSeconds: 2, MaxShutterSeconds: 1}, 0.01, "min_shutter_seconds"},
		{"zero anchor", exposure.Default(), 0, "positive"},
		{"nan anchor", exposure.Default(), math.NaN(), "positive"},
		{"empty range", exposure.Settings{BracketCount: 3, EVSpacing: 1, MinShutterSeconds: 0.0101, MaxShutterSeconds: 0.0102}, 0.01, "no shutter speeds"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Build(test.settings, bracket.Middle, test.anchor)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q does not mention %q", err, test.want)
			}
		})
	}
}

func TestFingerprintStable(t *testing.T) {
	first, err := Build(exposure.Default(), bracket.Middle, 1.0/125)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := Build(exposure.Default(), bracket.Middle, 0.0079)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	firstPrint, err := first.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	secondPrint, err := second.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if firstPrint != secondPrint {
		t.Errorf("plans that snap to the same anchor have different fingerprints: %s vs %s", firstPrint, secondPrint)
	}

	darker, err := Build(exposure.Default(), bracket.Darkest, 1.0/125)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	darkerPrint, err := darker.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}
	if darkerPrint == firstPrint {
		t.Error("different anchors produced the same fingerprint")
	}
}

func TestFingerprintText(t *testing.T) {
	result, err := Build(exposure.Default(), bracket.Middle, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	fingerprint, err := result.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	text := fingerprint.String()
	if len(text) != 64 {
		t.Errorf("String() length = %d, want 64", len(text))
	}
	if short := fingerprint.Short(); short != text[:12] {
		t.Errorf("Short() = %q, want prefix of %q", short, text)
	}

	parsed, err := ParseFingerprint(text)
	if err != nil {
		t.Fatalf("ParseFingerprint: %v", err)
	}
	if parsed != fingerprint {
		t.Error("ParseFingerprint did not round trip")
	}

	if _, err := ParseFingerprint("abcd"); err == nil {
		t.Error("ParseFingerprint accepted a short digest")
	}
	if _, err := ParseFingerprint(strings.Repeat("z", 64)); err == nil {
		t.Error("ParseFingerprint accepted non-hex input")
	}
}

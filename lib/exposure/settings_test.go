// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package exposure

import (
	"math"
	"strings"
	"testing"

	"github.com/bureau-foundation/bracket/lib/shutter"
)

func TestDefault(t *testing.T) {
	settings := Default()
	if settings.BracketCount != 5 || settings.EVSpacing != 3 || !settings.IncludeThirdStops {
		t.Errorf("Default() = %+v", settings)
	}
	if err := settings.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
	if settings.Step() != 9 || settings.Half() != 2 {
		t.Errorf("step=%d half=%d, want 9 and 2", settings.Step(), settings.Half())
	}
}

func TestSanitize(t *testing.T) {
	defaults := Default()

	tests := []struct {
		name  string
		input Settings
		want  Settings
	}{
		{
			name:  "valid settings unchanged",
			input: Settings{7, 1, 1.0 / 4000, 15, false},
			want:  Settings{7, 1, 1.0 / 4000, 15, false},
		},
		{
			name:  "unknown bracket count",
			input: Settings{4, 1, 1.0 / 4000, 15, false},
			want:  Settings{5, 1, 1.0 / 4000, 15, false},
		},
		{
			name:  "unknown spacing",
			input: Settings{7, 5, 1.0 / 4000, 15, false},
			want:  Settings{7, 3, 1.0 / 4000, 15, false},
		},
		{
			name:  "non-finite min replaced alone",
			input: Settings{7, 1, math.NaN(), 15, true},
			want:  Settings{7, 1, defaults.MinShutterSeconds, 15, true},
		},
		{
			name:  "inverted range resets both bounds",
			input: Settings{7, 1, 15, 1.0 / 4000, true},
			want:  Settings{7, 1, defaults.MinShutterSeconds, defaults.MaxShutterSeconds, true},
		},
		{
			name:  "zero min resets both bounds",
			input: Settings{3, 2, 0, 1, false},
			want:  Settings{3, 2, defaults.MinShutterSeconds, defaults.MaxShutterSeconds, false},
		},
		{
			name:  "infinite max replaced then kept",
			input: Settings{3, 2, 1.0 / 1000, math.Inf(1), false},
			want:  Settings{3, 2, 1.0 / 1000, defaults.MaxShutterSeconds, false},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Sanitize(test.input); got != test.want {
				t.Errorf("Sanitize(%+v) = %+v, want %+v", test.input, got, test.want)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := Settings{BracketCount: 4, EVSpacing: 7, MinShutterSeconds: 2, MaxShutterSeconds: 1}.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"bracket_count 4", "ev_spacing 7", "shorter than"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q missing %q", err, fragment)
		}
	}
}

func TestSanitizedSettingsAlwaysValidate(t *testing.T) {
	inputs := []Settings{
		{},
		{BracketCount: -1, EVSpacing: -1, MinShutterSeconds: -1, MaxShutterSeconds: -1},
		{BracketCount: 11, EVSpacing: 3, MinShutterSeconds: math.Inf(-1), MaxShutterSeconds: math.NaN()},
	}
	for _, input := range inputs {
		if err := Sanitize(input).Validate(); err != nil {
			t.Errorf("Sanitize(%+v) does not validate: %v", input, err)
		}
	}
}

func TestMerge(t *testing.T) {
	count := 9
	spacing := 4
	third := false

	merged := Merge(Default(), Update{BracketCount: &count, EVSpacing: &spacing, IncludeThirdStops: &third})

	if merged.BracketCount != 9 {
		t.Errorf("bracket count = %d, want 9", merged.BracketCount)
	}
	if merged.EVSpacing != 3 {
		t.Errorf("ev spacing = %d, want sanitized 3", merged.EVSpacing)
	}
	if merged.IncludeThirdStops {
		t.Error("third stops should be disabled")
	}
	if (Update{}).IsEmpty() != true || (Update{BracketCount: &count}).IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
}

func TestDiff(t *testing.T) {
	if update := Diff(Default(), Default()); !update.IsEmpty() {
		t.Errorf("Diff of equal settings = %+v, want empty", update)
	}

	from := Default()
	to := from
	to.BracketCount = 7
	to.MaxShutterSeconds = 1
	update := Diff(from, to)
	if update.BracketCount == nil || *update.BracketCount != 7 {
		t.Errorf("bracket count = %v, want 7", update.BracketCount)
	}
	if update.MaxShutterSeconds == nil || *update.MaxShutterSeconds != 1 {
		t.Errorf("max shutter = %v, want 1", update.MaxShutterSeconds)
	}
	if update.EVSpacing != nil || update.MinShutterSeconds != nil || update.IncludeThirdStops != nil {
		t.Errorf("unchanged fields set: %+v", update)
	}
	if got := update.Apply(from); got != to {
		t.Errorf("Apply(Diff) = %+v, want %+v", got, to)
	}

	to = from
	to.MinShutterSeconds += shutter.Epsilon / 2
	if update := Diff(from, to); !update.IsEmpty() {
		t.Error("a difference below Epsilon should not count")
	}
}

func TestTableHelpers(t *testing.T) {
	settings := Settings{5, 1, 1.0 / 8000, 30, false}
	if got := settings.Table().Len(); got != 19 {
		t.Errorf("Table().Len() = %d, want 19", got)
	}

	var cache shutter.TableCache
	if got := settings.CachedTable(&cache).Len(); got != 19 {
		t.Errorf("CachedTable().Len() = %d, want 19", got)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d tables, want 1", cache.Len())
	}
}

func TestDescribe(t *testing.T) {
	want := `5 shots, 3 EV apart, 1/8000 to 30", third stops`
	if got := Default().Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDynamicRange(t *testing.T) {
	tests := []struct {
		count, spacing, want int
	}{
		{5, 3, 12},
		{3, 1, 2},
		{9, 2, 16},
	}
	for _, tt := range tests {
		settings := Default()
		settings.BracketCount = tt.count
		settings.EVSpacing = tt.spacing
		if got := settings.DynamicRange(); got != tt.want {
			t.Errorf("DynamicRange(%d shots, %d EV) = %d, want %d", tt.count, tt.spacing, got, tt.want)
		}
	}
}

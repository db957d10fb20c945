// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shutter

import (
	"math"
	"testing"

	"github.com/bureau-foundation/bracket/lib/testutil"
)

func TestCatalogInvariants(t *testing.T) {
	for _, includeThirdStops := range []bool{false, true} {
		options := AllOptions(includeThirdStops)

		wantLength := 24
		if includeThirdStops {
			wantLength = 70
		}
		if len(options) != wantLength {
			t.Errorf("third=%v: %d options, want %d", includeThirdStops, len(options), wantLength)
		}

		labels := make(map[string]bool)
		for index, option := range options {
			if index > 0 && option.Seconds >= options[index-1].Seconds {
				t.Errorf("third=%v: index %d (%s) not strictly faster than %s",
					includeThirdStops, index, option.Label, options[index-1].Label)
			}
			if labels[option.Label] {
				t.Errorf("third=%v: duplicate label %q", includeThirdStops, option.Label)
			}
			labels[option.Label] = true
		}
	}
}

func TestFullStopsContainedInThirdStops(t *testing.T) {
	third := AllOptions(true)
	for _, full := range AllOptions(false) {
		found := false
		for _, option := range third {
			if option.Seconds == full.Seconds && option.Label == full.Label {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("full stop %s missing from third-stop catalog", full.Label)
		}
	}
}

func TestAllOptionsReturnsCopy(t *testing.T) {
	options := AllOptions(false)
	options[0].Label = "mutated"
	if AllOptions(false)[0].Label != `30"` {
		t.Fatal("mutating AllOptions result changed the catalog")
	}
}

func TestClosestIndex(t *testing.T) {
	options := AllOptions(false)

	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"exact", 1.0 / 250, "1/250"},
		{"slightly slow", 1.0 / 240, "1/250"},
		{"between 1/2 and 1/4 nearer half", 0.4, "1/2"},
		{"above range", 100, `30"`},
		{"below range", 1e-9, "1/256000"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			index := ClosestIndex(options, test.seconds)
			if options[index].Label != test.want {
				t.Errorf("ClosestIndex(%v) = %s, want %s", test.seconds, options[index].Label, test.want)
			}
		})
	}
}

func TestClosestIndexTieFavoursFirst(t *testing.T) {
	options := []Option{{2, `2"`}, {1, `1"`}}
	if index := ClosestIndex(options, 1.5); index != 0 {
		t.Errorf("tie resolved to index %d, want 0", index)
	}

	reversed := []Option{{1, `1"`}, {2, `2"`}}
	if index := ClosestIndex(reversed, 1.5); index != 0 {
		t.Errorf("tie on ascending slice resolved to index %d, want 0", index)
	}
}

func TestClosestIndexEmpty(t *testing.T) {
	if index := ClosestIndex(nil, 1); index != 0 {
		t.Errorf("ClosestIndex(nil) = %d, want 0", index)
	}
	if _, ok := ClosestOption(1, nil); ok {
		t.Error("ClosestOption(nil) reported ok")
	}
}

func TestClosestIndexIdempotent(t *testing.T) {
	for _, includeThirdStops := range []bool{false, true} {
		table := BuildTable(1.0/8000, 30, includeThirdStops)
		for index, option := range table.Options {
			if got := table.ClosestIndex(option.Seconds); got != index {
				t.Errorf("third=%v: ClosestIndex(%s) = %d, want %d", includeThirdStops, option.Label, got, index)
			}
		}
	}
}

func TestSnap(t *testing.T) {
	values := []float64{4, 2, 1}
	testutil.RequireNear(t, Snap(1.9, values), 2, "snap 1.9")
	testutil.RequireNear(t, Snap(3, values), 4, "tie keeps first")
	testutil.RequireNear(t, Snap(7, nil), 7, "empty values")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds           float64
		includeThirdStops bool
		want              string
	}{
		{1.0 / 500, false, "1/500"},
		{1.0 / 500, true, "1/500"},
		{1.0 / 320, true, "1/320"},
		{1.0 / 320, false, "1/250"},
		{4, false, `4"`},
		{3.2, true, `3.2"`},
		{0.5, true, "1/2"},
		{0, false, "-"},
		{0, true, "-"},
		{-1, false, "-"},
		{math.NaN(), true, "-"},
		{math.Inf(1), false, "-"},
	}
	for _, test := range tests {
		if got := Format(test.seconds, test.includeThirdStops); got != test.want {
			t.Errorf("Format(%v, %v) = %q, want %q", test.seconds, test.includeThirdStops, got, test.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{"1/250", 1.0 / 250, true},
		{" 1/250s ", 1.0 / 250, true},
		{`4"`, 4, true},
		{"4s", 4, true},
		{"4 S", 4, true},
		{`0.8"`, 0.8, true},
		{"1/2.5", 0.4, true},
		// Label match wins over arithmetic: the 1/3 label is 0.3s.
		{"1/3", 0.3, true},
		{"2/3", 2.0 / 3, true},
		{"0.7", 0.7, true},
		{"1/0", 0, false},
		{"x/4", 0, false},
		{"/4", 0, false},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, test := range tests {
		got, ok := Parse(test.input)
		if ok != test.wantOK {
			t.Errorf("Parse(%q) ok = %v, want %v", test.input, ok, test.wantOK)
			continue
		}
		if ok {
			testutil.RequireNear(t, got, test.want, "Parse(%q)", test.input)
		}
	}
}

// Fractions split on "/" and read the first two parts; an empty
// numerator or denominator is not a number.
func TestParseFractionEdges(t *testing.T) {
	for _, input := range []string{"/4", "1/", "/", " / 4"} {
		if got, ok := Parse(input); ok {
			t.Errorf("Parse(%q) = %v, want failure", input, got)
		}
	}
	if got, ok := Parse("1/2/3"); !ok {
		t.Error(`Parse("1/2/3") failed, want the first two parts`)
	} else {
		testutil.RequireNear(t, got, 0.5, `Parse("1/2/3")`)
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, includeThirdStops := range []bool{false, true} {
		options := AllOptions(includeThirdStops)
		for _, option := range options {
			seconds, ok := Parse(option.Label)
			if !ok {
				t.Errorf("Parse(%q) failed", option.Label)
				continue
			}
			recovered, _ := ClosestOption(seconds, options)
			if recovered != option {
				t.Errorf("round trip of %q recovered %q", option.Label, recovered.Label)
			}
		}
	}
}

func TestIsFullStop(t *testing.T) {
	if !IsFullStop(1.0 / 250) {
		t.Error("1/250 should be a full stop")
	}
	if IsFullStop(1.0 / 320) {
		t.Error("1/320 should not be a full stop")
	}
	if !IsFullStop(30) {
		t.Error(`30" should be a full stop`)
	}
	if IsFullStop(0) {
		t.Error("0 should not be a full stop")
	}
}

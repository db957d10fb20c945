// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shutter

// Epsilon is the tolerance used whenever two shutter durations are
// compared for equality or range membership.
const Epsilon = 1e-6

// Option is one legal shutter speed: its duration in seconds and the
// label a camera would display for it.
type Option struct {
	Seconds float64 `json:"seconds"`
	Label   string  `json:"label"`
}

// fullStopOptions halves the exposure at every step. The labels follow
// camera convention (1/15, 1/125) rather than exact powers of two.
var fullStopOptions = []Option{
	{30, `30"`},
	{15, `15"`},
	{8, `8"`},
	{4, `4"`},
	{2, `2"`},
	{1, `1"`},
	{1.0 / 2, "1/2"},
	{1.0 / 4, "1/4"},
	{1.0 / 8, "1/8"},
	{1.0 / 15, "1/15"},
	{1.0 / 30, "1/30"},
	{1.0 / 60, "1/60"},
	{1.0 / 125, "1/125"},
	{1.0 / 250, "1/250"},
	{1.0 / 500, "1/500"},
	{1.0 / 1000, "1/1000"},
	{1.0 / 2000, "1/2000"},
	{1.0 / 4000, "1/4000"},
	{1.0 / 8000, "1/8000"},
	{1.0 / 16000, "1/16000"},
	{1.0 / 32000, "1/32000"},
	{1.0 / 64000, "1/64000"},
	{1.0 / 128000, "1/128000"},
	{1.0 / 256000, "1/256000"},
}

// thirdStopOptions contains every full-stop value above plus the two
// intermediate third stops between each pair.
var thirdStopOptions = []Option{
	{30, `30"`},
	{25, `25"`},
	{20, `20"`},
	{15, `15"`},
	{13, `13"`},
	{10, `10"`},
	{8, `8"`},
	{6, `6"`},
	{5, `5"`},
	{4, `4"`},
	{3.2, `3.2"`},
	{2.5, `2.5"`},
	{2, `2"`},
	{1.6, `1.6"`},
	{1.3, `1.3"`},
	{1, `1"`},
	{0.8, `0.8"`},
	{0.6, `0.6"`},
	{0.5, "1/2"},
	{0.4, "1/2.5"},
	{0.3, "1/3"},
	{0.25, "1/4"},
	{0.2, "1/5"},
	{0.15, "1/6"},
	{1.0 / 8, "1/8"},
	{0.1, "1/10"},
	{1.0 / 13, "1/13"},
	{1.0 / 15, "1/15"},
	{1.0 / 20, "1/20"},
	{1.0 / 25, "1/25"},
	{1.0 / 30, "1/30"},
	{1.0 / 40, "1/40"},
	{1.0 / 50, "1/50"},
	{1.0 / 60, "1/60"},
	{1.0 / 80, "1/80"},
	{1.0 / 100, "1/100"},
	{1.0 / 125, "1/125"},
	{1.0 / 160, "1/160"},
	{1.0 / 200, "1/200"},
	{1.0 / 250, "1/250"},
	{1.0 / 320, "1/320"},
	{1.0 / 400, "1/400"},
	{1.0 / 500, "1/500"},
	{1.0 / 640, "1/640"},
	{1.0 / 800, "1/800"},
	{1.0 / 1000, "1/1000"},
	{1.0 / 1250, "1/1250"},
	{1.0 / 1600, "1/1600"},
	{1.0 / 2000, "1/2000"},
	{1.0 / 2500, "1/2500"},
	{1.0 / 3200, "1/3200"},
	{1.0 / 4000, "1/4000"},
	{1.0 / 5000, "1/5000"},
	{1.0 / 6400, "1/6400"},
	{1.0 / 8000, "1/8000"},
	{1.0 / 10000, "1/10000"},
	{1.0 / 12500, "1/12500"},
	{1.0 / 16000, "1/16000"},
	{1.0 / 20000, "1/20000"},
	{1.0 / 25000, "1/25000"},
	{1.0 / 32000, "1/32000"},
	{1.0 / 40000, "1/40000"},
	{1.0 / 50000, "1/50000"},
	{1.0 / 64000, "1/64000"},
	{1.0 / 80000, "1/80000"},
	{1.0 / 100000, "1/100000"},
	{1.0 / 128000, "1/128000"},
	{1.0 / 160000, "1/160000"},
	{1.0 / 200000, "1/200000"},
	{1.0 / 256000, "1/256000"},
}

// catalog selects the option set for the requested granularity. The
// returned slice is shared; callers inside the package must not
// modify it.
func catalog(includeThirdStops bool) []Option {
	if includeThirdStops {
		return thirdStopOptions
	}
	return fullStopOptions
}

// AllOptions returns a copy of the full unfiltered catalog, slowest
// speed first.
func AllOptions(includeThirdStops bool) []Option {
	source := catalog(includeThirdStops)
	options := make([]Option, len(source))
	copy(options, source)
	return options
}

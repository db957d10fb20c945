// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package shutter

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ClosestOption returns the option whose duration is nearest to
// seconds. Ties go to the option encountered first, which for a
// slowest-first slice is the longer duration. Returns false only when
// options is empty.
func ClosestOption(seconds float64, options []Option) (Option, bool) {
	if len(options) == 0 {
		return Option{}, false
	}
	return options[ClosestIndex(options, seconds)], true
}

// ClosestIndex returns the index of the option nearest to seconds,
// with the same tie rule as [ClosestOption]. An empty slice yields 0.
func ClosestIndex(options []Option, seconds float64) int {
	if len(options) == 0 {
		return 0
	}

	index := 0
	bestDistance := math.Abs(options[0].Seconds - seconds)
	for current, option := range options {
		distance := math.Abs(option.Seconds - seconds)
		if distance < bestDistance {
			bestDistance = distance
			index = current
		}
	}
	return index
}

// Snap returns the value in values nearest to seconds. An empty values
// slice returns seconds unchanged.
func Snap(seconds float64, values []float64) float64 {
	if len(values) == 0 {
		return seconds
	}

	closest := values[0]
	bestDistance := math.Abs(values[0] - seconds)
	for _, value := range values {
		distance := math.Abs(value - seconds)
		if distance < bestDistance {
			bestDistance = distance
			closest = value
		}
	}
	return closest
}

// Format renders seconds as the label of the nearest catalog entry.
// Non-finite and non-positive durations render as "-".
func Format(seconds float64, includeThirdStops bool) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return "-"
	}
	option, ok := ClosestOption(seconds, catalog(includeThirdStops))
	if !ok {
		return "-"
	}
	return option.Label
}

// Parse reads a shutter speed typed by a person. Matching is case
// insensitive and ignores whitespace, double quotes and the letter
// "s", so `1/250`, `1/250s`, `4"` and `4 s` are all accepted.
//
// Resolution order: an exact label from the third-stop catalog, then a
// fraction "a/b" with b > 0, then a positive decimal number. Anything
// else reports ok=false.
func Parse(text string) (float64, bool) {
	value := strings.ToLower(strings.TrimSpace(text))
	if value == "" {
		return 0, false
	}

	normalized := normalizeLabel(value)
	for _, option := range thirdStopOptions {
		if normalizeLabel(option.Label) == normalized {
			return option.Seconds, true
		}
	}

	if strings.Contains(normalized, "/") {
		parts := strings.Split(normalized, "/")
		numerator, numeratorOK := parseFinite(parts[0])
		denominator, denominatorOK := parseFinite(parts[1])
		if numeratorOK && denominatorOK && denominator > 0 {
			return numerator / denominator, true
		}
		return 0, false
	}

	number, ok := parseFinite(normalized)
	if !ok || number <= 0 {
		return 0, false
	}
	return number, true
}

// IsFullStop reports whether seconds lies within [Epsilon] of a
// full-stop catalog entry.
func IsFullStop(seconds float64) bool {
	for _, option := range fullStopOptions {
		if math.Abs(option.Seconds-seconds) < Epsilon {
			return true
		}
	}
	return false
}

// normalizeLabel lowercases and drops whitespace, "s" and '"'.
func normalizeLabel(value string) string {
	var builder strings.Builder
	builder.Grow(len(value))
	for _, character := range strings.ToLower(value) {
		if character == 's' || character == '"' || unicode.IsSpace(character) {
			continue
		}
		builder.WriteRune(character)
	}
	return builder.String()
}

// parseFinite parses a decimal number and rejects NaN, infinities and
// the empty string.
func parseFinite(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	number, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

// settingsFromQuery overlays the settings parameters in query onto
// base. Every malformed parameter is reported, and the merged settings
// must validate.
func settingsFromQuery(base exposure.Settings, query url.Values) (exposure.Settings, error) {
	var update exposure.Update
	var errs []error

	if value := query.Get("bracket_count"); value != "" {
		count, err := strconv.Atoi(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("bracket_count: %q is not an integer", value))
		}
		update.BracketCount = &count
	}
	if value := query.Get("ev_spacing"); value != "" {
		spacing, err := strconv.Atoi(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("ev_spacing: %q is not an integer", value))
		}
		update.EVSpacing = &spacing
	}
	if value := query.Get("min"); value != "" {
		seconds, ok := shutter.Parse(value)
		if !ok {
			errs = append(errs, fmt.Errorf("min: cannot parse shutter speed %q", value))
		}
		update.MinShutterSeconds = &seconds
	}
	if value := query.Get("max"); value != "" {
		seconds, ok := shutter.Parse(value)
		if !ok {
			errs = append(errs, fmt.Errorf("max: cannot parse shutter speed %q", value))
		}
		update.MaxShutterSeconds = &seconds
	}
	if value := query.Get("third_stops"); value != "" {
		include, err := strconv.ParseBool(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("third_stops: %q is not a boolean", value))
		}
		update.IncludeThirdStops = &include
	}
	if len(errs) > 0 {
		return exposure.Settings{}, errors.Join(errs...)
	}

	settings := update.Apply(base)
	if err := settings.Validate(); err != nil {
		return exposure.Settings{}, err
	}
	return settings, nil
}

// requiredSpeed reads a shutter speed parameter that must be present.
func requiredSpeed(query url.Values, name string) (float64, error) {
	value := query.Get(name)
	if value == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	seconds, ok := shutter.Parse(value)
	if !ok {
		return 0, fmt.Errorf("%s: cannot parse shutter speed %q", name, value)
	}
	return seconds, nil
}

// anchorFromQuery reads the anchor role, defaulting to the middle.
func anchorFromQuery(query url.Values) (bracket.Anchor, error) {
	value := query.Get("anchor")
	if value == "" {
		return bracket.Middle, nil
	}
	return bracket.ParseAnchor(value)
}

// orientationFromQuery reads the table orientation, defaulting to the
// catalog's slowest-first order.
func orientationFromQuery(query url.Values) (shutter.Orientation, error) {
	value := query.Get("orientation")
	if value == "" {
		return shutter.SlowestFirst, nil
	}
	var orientation shutter.Orientation
	if err := orientation.UnmarshalText([]byte(value)); err != nil {
		return shutter.SlowestFirst, err
	}
	return orientation, nil
}

// floatParam reads an optional finite number. NaN and infinities are
// rejected.
func floatParam(query url.Values, name string, fallback float64) (float64, error) {
	value := query.Get(name)
	if value == "" {
		return fallback, nil
	}
	number, err := numberParam(query, name)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", name, value)
	}
	return number, nil
}

// numberParam reads a number that may be NaN or infinite.
func numberParam(query url.Values, name string) (float64, error) {
	value := query.Get(name)
	number, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, value)
	}
	return number, nil
}

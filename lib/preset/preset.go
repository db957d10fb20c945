// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/shutter"
)

// SourceBuiltin is the Source of presets compiled into the binary.
const SourceBuiltin = "builtin"

// Preset is a named bracket starting point.
type Preset struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Anchor      bracket.Anchor `json:"anchor"`
	// AnchorSpeed is a shutter label or number accepted by
	// shutter.Parse, such as "1/125", `4"` or "0.25".
	AnchorSpeed string `json:"anchor_speed"`
	// BracketCount and EVSpacing override the active settings when
	// non-zero.
	BracketCount int `json:"bracket_count,omitempty"`
	EVSpacing    int `json:"ev_spacing,omitempty"`
	// Source is SourceBuiltin or the file the preset was read from.
	Source string `json:"source,omitempty"`
}

// Builtin returns the compiled-in presets sorted by name.
func Builtin() []Preset {
	return []Preset{
		{
			Name:         "indoor",
			Description:  "window-lit interior, 1/1000 to 4\"",
			Anchor:       bracket.Middle,
			AnchorSpeed:  "1/15",
			BracketCount: 5,
			EVSpacing:    3,
			Source:       SourceBuiltin,
		},
		{
			Name:         "new-moon",
			Description:  "night sky with foreground, 1/250 to 15\"",
			Anchor:       bracket.Middle,
			AnchorSpeed:  "1/4",
			BracketCount: 5,
			EVSpacing:    3,
			Source:       SourceBuiltin,
		},
		{
			Name:         "sunny",
			Description:  "direct sun in frame, 1/8000 to 1/2",
			Anchor:       bracket.Middle,
			AnchorSpeed:  "1/125",
			BracketCount: 5,
			EVSpacing:    3,
			Source:       SourceBuiltin,
		},
	}
}

// AnchorSeconds parses AnchorSpeed.
func (p Preset) AnchorSeconds() (float64, error) {
	seconds, ok := shutter.Parse(p.AnchorSpeed)
	if !ok {
		return 0, fmt.Errorf("preset %q: invalid anchor_speed %q", p.Name, p.AnchorSpeed)
	}
	return seconds, nil
}

// Apply overlays the preset's bracket count and EV spacing onto base.
func (p Preset) Apply(base exposure.Settings) exposure.Settings {
	if p.BracketCount != 0 {
		base.BracketCount = p.BracketCount
	}
	if p.EVSpacing != 0 {
		base.EVSpacing = p.EVSpacing
	}
	return base
}

// Validate reports every problem with the preset.
func (p Preset) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if _, ok := shutter.Parse(p.AnchorSpeed); !ok {
		errs = append(errs, fmt.Errorf("anchor_speed %q is not a shutter speed", p.AnchorSpeed))
	}
	if p.BracketCount != 0 && !slices.Contains(exposure.AllowedBracketCounts, p.BracketCount) {
		errs = append(errs, fmt.Errorf("bracket_count %d must be one of %v", p.BracketCount, exposure.AllowedBracketCounts))
	}
	if p.EVSpacing != 0 && !slices.Contains(exposure.AllowedEVSpacings, p.EVSpacing) {
		errs = append(errs, fmt.Errorf("ev_spacing %d must be one of %v", p.EVSpacing, exposure.AllowedEVSpacings))
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Parse strips JSONC comments and trailing commas from data and decodes
// a preset. It does not validate.
func Parse(data []byte) (Preset, error) {
	var preset Preset
	if err := json.Unmarshal(jsonc.ToJSON(data), &preset); err != nil {
		return Preset{}, fmt.Errorf("parsing preset: %w", err)
	}
	return preset, nil
}

// ReadFile reads and validates one preset file. The name defaults to
// the file name without its extension.
func ReadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading %s: %w", path, err)
	}

	preset, err := Parse(data)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	if preset.Name == "" {
		base := filepath.Base(path)
		preset.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	preset.Source = path

	if err := preset.Validate(); err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	return preset, nil
}

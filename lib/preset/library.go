// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/junegunn/fzf/src/util"
)

// ErrNotFound is returned by Lookup when no preset matches.
var ErrNotFound = errors.New("preset not found")

// Library is an immutable set of presets keyed by lowercase name.
type Library struct {
	presets []Preset
}

// NewLibrary builds a library from presets. Later entries replace
// earlier ones with the same name (case-insensitive).
func NewLibrary(presets ...Preset) *Library {
	byName := make(map[string]Preset, len(presets))
	for _, preset := range presets {
		byName[strings.ToLower(preset.Name)] = preset
	}

	library := &Library{presets: make([]Preset, 0, len(byName))}
	for _, preset := range byName {
		library.presets = append(library.presets, preset)
	}
	slices.SortFunc(library.presets, func(a, b Preset) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return library
}

// LoadDir returns the built-in presets plus every *.jsonc and *.json
// file in directory. A missing or empty directory path yields only the
// built-ins. Any invalid file fails the whole load, naming every bad
// file.
func LoadDir(directory string) (*Library, error) {
	presets := Builtin()
	if directory == "" {
		return NewLibrary(presets...), nil
	}

	entries, err := os.ReadDir(directory)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLibrary(presets...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading presets directory: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".jsonc", ".json":
		default:
			continue
		}
		preset, err := ReadFile(filepath.Join(directory, entry.Name()))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		presets = append(presets, preset)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return NewLibrary(presets...), nil
}

// All returns every preset sorted by name.
func (l *Library) All() []Preset {
	return slices.Clone(l.presets)
}

// Names returns every preset name sorted.
func (l *Library) Names() []string {
	names := make([]string, len(l.presets))
	for i, preset := range l.presets {
		names[i] = preset.Name
	}
	return names
}

// Get returns the preset named name, ignoring case.
func (l *Library) Get(name string) (Preset, bool) {
	for _, preset := range l.presets {
		if strings.EqualFold(preset.Name, name) {
			return preset, true
		}
	}
	return Preset{}, false
}

// Match is a fuzzy search hit.
type Match struct {
	Preset    Preset
	Score     int
	Positions []int
}

// Search ranks presets whose name fuzzily matches query, best first.
// Ties keep name order.
func (l *Library) Search(query string) []Match {
	pattern := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(pattern) == 0 {
		return nil
	}

	slab := util.MakeSlab(slab16Size, slab32Size)
	var matches []Match
	for _, preset := range l.presets {
		result := fuzzyMatch(preset.Name, pattern, slab)
		if result.Score <= 0 {
			continue
		}
		matches = append(matches, Match{Preset: preset, Score: result.Score, Positions: result.Positions})
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return matches
}

// Lookup resolves query to a single preset: an exact name match if one
// exists, otherwise the best fuzzy match. Returns an error wrapping
// ErrNotFound when nothing matches.
func (l *Library) Lookup(query string) (Preset, error) {
	if preset, ok := l.Get(strings.TrimSpace(query)); ok {
		return preset, nil
	}
	matches := l.Search(query)
	if len(matches) == 0 {
		return Preset{}, fmt.Errorf("%w: %q (available: %s)", ErrNotFound, query, strings.Join(l.Names(), ", "))
	}
	return matches[0].Preset, nil
}

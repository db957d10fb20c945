// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bureau-foundation/bracket/lib/bracket"
	"github.com/bureau-foundation/bracket/lib/exposure"
	"github.com/bureau-foundation/bracket/lib/plan"
	"github.com/bureau-foundation/bracket/lib/testutil"
	"github.com/bureau-foundation/bracket/lib/window"
)

func TestBuiltinPresetsAreValid(t *testing.T) {
	for _, preset := range Builtin() {
		if err := preset.Validate(); err != nil {
			t.Errorf("built-in %q: %v", preset.Name, err)
		}
		if preset.Source != SourceBuiltin {
			t.Errorf("built-in %q Source = %q", preset.Name, preset.Source)
		}
	}
}

// Each built-in scene preset should produce the window span its scene
// marker is named for.
func TestBuiltinPresetsMatchScenes(t *testing.T) {
	for _, preset := range Builtin() {
		t.Run(preset.Name, func(t *testing.T) {
			anchorSeconds, err := preset.AnchorSeconds()
			if err != nil {
				t.Fatalf("AnchorSeconds: %v", err)
			}
			settings := preset.Apply(exposure.Default())
			built, err := plan.Build(settings, preset.Anchor, anchorSeconds)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if built.Clamped() {
				t.Fatalf("preset plan is clamped: %+v", built)
			}
			brightest := built.Shots[0].Seconds
			darkest := built.Shots[len(built.Shots)-1].Seconds
			if scene := window.SceneFor(darkest, brightest); string(scene) != preset.Name {
				t.Errorf("SceneFor(%v, %v) = %q, want %q", darkest, brightest, scene, preset.Name)
			}
		})
	}
}

func TestParseJSONC(t *testing.T) {
	preset, err := Parse([]byte(`{
		// evening light
		"name": "golden-hour",
		"anchor": "darkest",
		"anchor_speed": "1/60", /* dialled on the body */
		"bracket_count": 7,
	}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if preset.Name != "golden-hour" || preset.Anchor != bracket.Darkest || preset.BracketCount != 7 {
		t.Errorf("Parse = %+v", preset)
	}
	seconds, err := preset.AnchorSeconds()
	if err != nil {
		t.Fatalf("AnchorSeconds: %v", err)
	}
	testutil.RequireNear(t, seconds, 1.0/60)
}

func TestParseRejectsUnknownAnchor(t *testing.T) {
	if _, err := Parse([]byte(`{"anchor": "sideways", "anchor_speed": "1"}`)); err == nil {
		t.Fatal("expected error for unknown anchor")
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	err := Preset{AnchorSpeed: "fast", BracketCount: 4, EVSpacing: 5}.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"name is required", "anchor_speed", "bracket_count", "ev_spacing"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestApply(t *testing.T) {
	base := exposure.Default()
	if got := (Preset{}).Apply(base); got != base {
		t.Errorf("empty preset changed settings: %+v", got)
	}
	got := Preset{BracketCount: 9, EVSpacing: 1}.Apply(base)
	if got.BracketCount != 9 || got.EVSpacing != 1 || got.MinShutterSeconds != base.MinShutterSeconds {
		t.Errorf("Apply = %+v", got)
	}
}

func TestReadFileDefaultsName(t *testing.T) {
	path := testutil.WriteFile(t, "blue-hour.jsonc", `{"anchor": "mid", "anchor_speed": "2\""}`)

	preset, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if preset.Name != "blue-hour" {
		t.Errorf("Name = %q, want blue-hour", preset.Name)
	}
	if preset.Source != path {
		t.Errorf("Source = %q, want %q", preset.Source, path)
	}
}

func TestLoadDirMergesAndOverrides(t *testing.T) {
	directory := t.TempDir()
	testutil.WriteFileIn(t, directory, "sunny.jsonc", `{"anchor": "brightest", "anchor_speed": "1/500"}`)
	testutil.WriteFileIn(t, directory, "studio.json", `{"anchor": "middle", "anchor_speed": "1/200", "ev_spacing": 1}`)
	testutil.WriteFileIn(t, directory, "notes.txt", "not a preset")

	library, err := LoadDir(directory)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	if names := library.Names(); !slices.Equal(names, []string{"indoor", "new-moon", "studio", "sunny"}) {
		t.Errorf("Names() = %v", names)
	}
	sunny, ok := library.Get("SUNNY")
	if !ok {
		t.Fatal("Get(SUNNY) not found")
	}
	if sunny.Anchor != bracket.Brightest || sunny.Source == SourceBuiltin {
		t.Errorf("user file did not replace built-in: %+v", sunny)
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	library, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(library.All()) != len(Builtin()) {
		t.Errorf("got %d presets, want the built-ins", len(library.All()))
	}
}

func TestLoadDirReportsEveryBadFile(t *testing.T) {
	directory := t.TempDir()
	testutil.WriteFileIn(t, directory, "broken.jsonc", `{"anchor": `)
	testutil.WriteFileIn(t, directory, "invalid.jsonc", `{"anchor_speed": "never"}`)

	_, err := LoadDir(directory)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"broken.jsonc", "invalid.jsonc"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name %s", err, want)
		}
	}
}

func TestLookup(t *testing.T) {
	library := NewLibrary(Builtin()...)

	tests := []struct {
		query string
		want  string
	}{
		{"sunny", "sunny"},
		{"Indoor", "indoor"},
		{"nm", "new-moon"},
		{"moon", "new-moon"},
		{"sny", "sunny"},
	}
	for _, test := range tests {
		preset, err := library.Lookup(test.query)
		if err != nil {
			t.Errorf("Lookup(%q): %v", test.query, err)
			continue
		}
		if preset.Name != test.want {
			t.Errorf("Lookup(%q) = %q, want %q", test.query, preset.Name, test.want)
		}
	}

	_, err := library.Lookup("xyz")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup(xyz) error = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "indoor, new-moon, sunny") {
		t.Errorf("error %q does not list available presets", err)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	if matches := NewLibrary(Builtin()...).Search("  "); matches != nil {
		t.Errorf("Search(blank) = %v, want nil", matches)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package window

import (
	"math"

	"github.com/bureau-foundation/bracket/lib/shutter"
)

// Scene names a lighting situation that a particular dark/bright pair
// covers well. The zero value means no known scene.
type Scene string

const (
	SceneNone    Scene = ""
	SceneSunny   Scene = "sunny"
	SceneIndoor  Scene = "indoor"
	SceneNewMoon Scene = "new-moon"
)

// sceneRanges pairs each scene with the dark and bright speeds that
// identify it.
var sceneRanges = []struct {
	scene  Scene
	dark   float64
	bright float64
}{
	{SceneSunny, 1.0 / 8000, 0.5},
	{SceneIndoor, 1.0 / 1000, 4},
	{SceneNewMoon, 1.0 / 250, 15},
}

// SceneFor returns the scene whose dark and bright speeds both match
// within shutter.Epsilon, or SceneNone.
func SceneFor(darkSeconds, brightSeconds float64) Scene {
	for _, candidate := range sceneRanges {
		if math.Abs(darkSeconds-candidate.dark) < shutter.Epsilon &&
			math.Abs(brightSeconds-candidate.bright) < shutter.Epsilon {
			return candidate.scene
		}
	}
	return SceneNone
}

// Marker returns the glyph shown beside the mid speed of a row in this
// scene, or "" for SceneNone.
func (s Scene) Marker() string {
	switch s {
	case SceneSunny:
		return "☀️"
	case SceneIndoor:
		return "🏠"
	case SceneNewMoon:
		return "🌚"
	default:
		return ""
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "time"

// FlashDuration is how long a flash takes to fade out.
const FlashDuration = 2 * time.Second

// FlashTickInterval is the re-render interval while a flash is
// visible.
const FlashTickInterval = 100 * time.Millisecond

// Flash is a highlight that starts at full intensity and fades
// linearly to zero over FlashDuration. The zero value is dark.
type Flash struct {
	ignition time.Time
}

// Ignite restarts the flash at full intensity.
func (flash *Flash) Ignite(now time.Time) {
	flash.ignition = now
}

// Intensity returns 1.0 at ignition decaying to 0.0.
func (flash Flash) Intensity(now time.Time) float64 {
	if flash.ignition.IsZero() {
		return 0
	}
	elapsed := now.Sub(flash.ignition)
	if elapsed < 0 || elapsed >= FlashDuration {
		return 0
	}
	return 1 - float64(elapsed)/float64(FlashDuration)
}

// Active reports whether the flash is still visible, meaning the tick
// timer should keep running.
func (flash Flash) Active(now time.Time) bool {
	return flash.Intensity(now) > 0
}

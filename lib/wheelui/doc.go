// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wheelui is the interactive bracket wheel: a bubbletea model
// that scrolls three columns of shutter speeds (dark, mid, bright) past
// a fixed centre line. The row under the centre line is the active
// bracket, and the footer lists every shot in it.
//
// Scrolling works with the keyboard (one row per press) and the mouse
// wheel (one terminal line per notch, snapping to the nearest row once
// the wheel stops). Pickers change the shot count and EV spacing in
// place; the row nearest the previous mid speed stays centred.
//
// When the model is given a settings channel (see
// [settingsstore.Store.Watch]) it follows changes made elsewhere and
// briefly highlights the header to show the settings moved.
package wheelui

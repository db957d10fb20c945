// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface pieces for
// bracket's interactive views: the colour theme, a scrollbar, a picker
// overlay for choosing among a few values, ANSI-aware overlay splicing,
// and a decaying highlight used to flag settings that changed under
// the user.
//
// The wheel in lib/wheelui owns layout and domain rendering; this
// package holds only what does not depend on shutter speeds.
package tui

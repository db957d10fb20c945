// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package settingsstore persists exposure settings between runs.
//
// Settings live in a single CBOR file (see [FileName]) inside the
// configured state directory. The file holds a [Record]: the sanitized
// settings plus the time they were saved. Loading never fails because
// of bad content: a missing file yields defaults, and a corrupt file
// yields defaults with a logged warning. Only I/O failures such as a
// permission error surface as errors.
//
// Saves are atomic: the record is written to a temporary file in the
// same directory and renamed over the previous one, so readers and
// watchers never observe a partial write.
//
// [Store.Watch] lets long-running consumers (the wheel TUI, the HTTP
// server) pick up changes made by "bracket settings set" in another
// terminal without restarting.
package settingsstore

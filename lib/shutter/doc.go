// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package shutter models the discrete shutter speeds a camera can use.
//
// Two fixed catalogs exist: full stops (each entry half the duration
// of the previous one, 30s down to 1/256000s) and third stops (every
// full stop split into three, same range, every full-stop value kept
// exactly). Both catalogs are ordered slowest first and are never
// exposed for mutation; [AllOptions] returns a copy.
//
// Lookups are nearest-neighbour scans over seconds with a fixed
// tolerance of [Epsilon]. Nothing in this package returns an error:
// malformed input yields a sentinel ("-" from [Format], ok=false from
// [Parse], an empty [Table] from degenerate ranges).
//
// [BuildTable] restricts a catalog to a camera's [min, max] range and
// tags the result with an [Orientation]. Callers that need the other
// direction ask for it with [Table.Oriented] instead of reversing
// slices themselves, so index arithmetic always knows which way
// "faster" points.
//
// This package depends on no other bracket packages.
package shutter

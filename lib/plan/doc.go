// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package plan turns exposure settings and an anchor speed into a shoot
// plan: the ordered list of shots a photographer dials in, each with its
// shutter label and its exposure offset from the anchor.
//
// A plan is built from the canonical slowest-first table, so shot 1 is
// always the brightest exposure and the anchor role keeps its
// photographic meaning (a brightest anchor is the longest shot).
//
// [Plan.Fingerprint] hashes the deterministic CBOR encoding of a plan
// with a domain-keyed BLAKE3, giving a short stable identifier for
// labelling bracket sets in notes or file names. Equal plans always
// share a fingerprint, regardless of which host or release built them.
package plan

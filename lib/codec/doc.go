// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the standard CBOR encoding configuration.
//
// Two serialization formats are used with a clear boundary:
//
//   - JSON for external interfaces: CLI --json output and the HTTP
//     API.
//   - CBOR for on-disk state (the persisted settings file) and for the
//     canonical bytes a shoot plan is fingerprinted from.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
// Same logical data always produces identical bytes.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// # Struct Tag Rules
//
// A `cbor` tag marks a type that is only ever stored as CBOR (the
// settings state file envelope). A `json` tag marks a type that may be
// serialized as both; fxamacker/cbor reads `json` tags when `cbor`
// tags are absent. Never put both tags on one field.
package codec

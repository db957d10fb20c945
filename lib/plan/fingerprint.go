// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"encoding/hex"
	"fmt"

	"github.com/bureau-foundation/bracket/lib/codec"
	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 digest identifying a plan.
type Fingerprint [32]byte

// fingerprintKey separates plan fingerprints from any other BLAKE3 use
// of the same bytes. ASCII "bracket.plan", zero-padded to 32 bytes.
// Changing it changes every fingerprint.
var fingerprintKey = [32]byte{
	'b', 'r', 'a', 'c', 'k', 'e', 't', '.', 'p', 'l', 'a', 'n',
}

// Fingerprint hashes the plan's deterministic CBOR encoding.
func (p Plan) Fingerprint() (Fingerprint, error) {
	data, err := codec.Marshal(p)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding plan: %w", err)
	}

	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		return Fingerprint{}, fmt.Errorf("initializing plan hasher: %w", err)
	}
	hasher.Write(data)

	var fingerprint Fingerprint
	copy(fingerprint[:], hasher.Sum(nil))
	return fingerprint, nil
}

// String returns the full lowercase hex digest.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first 12 hex characters, enough to tell plans apart
// in a listing.
func (f Fingerprint) Short() string {
	return f.String()[:12]
}

// MarshalText encodes the fingerprint as hex.
func (f Fingerprint) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseFingerprint decodes a full hex fingerprint.
func ParseFingerprint(text string) (Fingerprint, error) {
	var fingerprint Fingerprint
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return fingerprint, fmt.Errorf("invalid fingerprint %q: %w", text, err)
	}
	if len(decoded) != len(fingerprint) {
		return fingerprint, fmt.Errorf("invalid fingerprint %q: want %d bytes, got %d", text, len(fingerprint), len(decoded))
	}
	copy(fingerprint[:], decoded)
	return fingerprint, nil
}

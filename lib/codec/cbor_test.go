// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bureau-foundation/bracket/lib/bracket"
)

type stateRecord struct {
	Name  string  `cbor:"name"`
	Count int     `cbor:"count"`
	Ratio float64 `cbor:"ratio,omitempty"`
}

type dualRecord struct {
	Anchor bracket.Anchor `json:"anchor"`
	Shots  int            `json:"shots"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := stateRecord{Name: "sunny", Count: 5, Ratio: 0.125}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded stateRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	value := map[string]int{"zeta": 1, "alpha": 2, "mid": 3}

	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	second, err := Marshal(map[string]int{"mid": 3, "alpha": 2, "zeta": 1})
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestTextMarshalerEncodesAsString(t *testing.T) {
	data, err := Marshal(dualRecord{Anchor: bracket.Darkest, Shots: 3})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	diagnostic, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(diagnostic, `"darkest"`) {
		t.Errorf("diagnostic %s does not name the anchor", diagnostic)
	}

	var decoded dualRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Anchor != bracket.Darkest || decoded.Shots != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestUnmarshalIgnoresUnknownFields(t *testing.T) {
	data, err := Marshal(map[string]any{"name": "x", "count": 2, "added_later": true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded stateRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Name != "x" || decoded.Count != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

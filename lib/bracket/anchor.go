// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bracket

import (
	"fmt"
	"strings"
)

// Anchor is the role the reference exposure plays in a bracket.
type Anchor int

const (
	// Middle places the anchor at the centre of the sequence.
	Middle Anchor = iota
	// Brightest places the anchor at position 0.
	Brightest
	// Darkest places the anchor at the last position.
	Darkest
)

// Anchors lists every role in display order.
var Anchors = []Anchor{Brightest, Middle, Darkest}

// String returns the lowercase role name.
func (a Anchor) String() string {
	switch a {
	case Brightest:
		return "brightest"
	case Middle:
		return "middle"
	case Darkest:
		return "darkest"
	default:
		return fmt.Sprintf("anchor(%d)", int(a))
	}
}

// ParseAnchor accepts "brightest", "middle" or "darkest" in any case,
// plus the short forms "bright", "mid" and "dark".
func ParseAnchor(text string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "brightest", "bright":
		return Brightest, nil
	case "middle", "mid":
		return Middle, nil
	case "darkest", "dark":
		return Darkest, nil
	default:
		return Middle, fmt.Errorf("unknown anchor %q (want brightest, middle or darkest)", text)
	}
}

// MarshalText encodes the anchor by name.
func (a Anchor) MarshalText() ([]byte, error) {
	switch a {
	case Brightest, Middle, Darkest:
		return []byte(a.String()), nil
	default:
		return nil, fmt.Errorf("unknown anchor %d", int(a))
	}
}

// UnmarshalText decodes any form accepted by ParseAnchor.
func (a *Anchor) UnmarshalText(text []byte) error {
	parsed, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Offset returns the anchor's position inside a sequence of
// bracketCount shots: 0 for Brightest, bracketCount-1 for Darkest and
// bracketCount/2 for Middle.
func (a Anchor) Offset(bracketCount int) int {
	switch a {
	case Brightest:
		return 0
	case Darkest:
		return bracketCount - 1
	default:
		return Half(bracketCount)
	}
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preset

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Slab sizes for fzf's scoring matrices. Preset names are short, so
// small slabs avoid per-call allocation.
const (
	slab16Size = 100 * 1024
	slab32Size = 2048
)

// fuzzyResult is the outcome of one fuzzy match. Score is zero when the
// pattern does not match.
type fuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch runs fzf's V2 algorithm case-insensitively. pattern must
// already be lowercase.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) fuzzyResult {
	if len(pattern) == 0 {
		return fuzzyResult{}
	}

	chars := util.ToChars([]byte(strings.ToLower(text)))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, slab)
	if result.Score <= 0 {
		return fuzzyResult{}
	}

	matched := fuzzyResult{Score: result.Score}
	if positions != nil {
		matched.Positions = append([]int(nil), *positions...)
	}
	return matched
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

func init() {
	// fzf's matcher reads package-level character-class and bonus
	// tables that are only populated by Init; without this call
	// uppercase runes are never classified and case-insensitive
	// matching fails against uppercase text.
	algo.Init("default")
}

// FuzzyResult is the outcome of matching a pattern against one text.
type FuzzyResult struct {
	// Matched is true when every pattern rune was found in order.
	Matched bool
	// Score ranks candidates; higher is better. Zero when unmatched.
	Score int
	// Positions are the rune indexes of matched characters, for
	// highlight rendering. Nil when unmatched.
	Positions []int
}

// NewFuzzySlab allocates the scratch buffer fzf's matcher needs. One
// slab is reused across all matches of a filtering pass; it must not
// be shared between goroutines.
func NewFuzzySlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch matches pattern against text using fzf's V2 algorithm
// with smart case: a pattern containing an uppercase rune matches
// case-sensitively, otherwise matching is case-insensitive. An empty
// pattern matches everything with score zero.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}

	caseSensitive := false
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			caseSensitive = true
			break
		}
	}
	if !caseSensitive {
		pattern = []rune(strings.ToLower(string(pattern)))
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(caseSensitive, true, true, &chars, pattern, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}

	matched := FuzzyResult{Matched: true, Score: result.Score}
	if positions != nil {
		matched.Positions = *positions
	}
	return matched
}

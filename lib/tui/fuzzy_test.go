// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "testing"

func TestFuzzyMatchBasic(t *testing.T) {
	slab := NewFuzzySlab()
	result := FuzzyMatch("grocery store purchase", []rune("grocery"), slab)
	if !result.Matched {
		t.Fatal("expected match")
	}
	if result.Score <= 0 {
		t.Errorf("score = %d, want positive", result.Score)
	}
}

func TestFuzzyMatchNonContiguous(t *testing.T) {
	slab := NewFuzzySlab()
	result := FuzzyMatch("ACC-20260815-0042", []rune("acc42"), slab)
	if !result.Matched {
		t.Fatal("expected non-contiguous match")
	}
	if len(result.Positions) != 5 {
		t.Errorf("positions = %v, want 5 entries", result.Positions)
	}
}

func TestFuzzyMatchNoMatch(t *testing.T) {
	slab := NewFuzzySlab()
	result := FuzzyMatch("rent payment", []rune("salary"), slab)
	if result.Matched {
		t.Error("unexpected match")
	}
	if result.Positions != nil {
		t.Errorf("positions = %v, want nil", result.Positions)
	}
}

func TestFuzzyMatchSmartCase(t *testing.T) {
	slab := NewFuzzySlab()
	// Lowercase pattern matches case-insensitively.
	if !FuzzyMatch("Monthly RENT", []rune("rent"), slab).Matched {
		t.Error("lowercase pattern should match uppercase text")
	}
	// Uppercase pattern is case-sensitive.
	if FuzzyMatch("monthly rent", []rune("RENT"), slab).Matched {
		t.Error("uppercase pattern should not match lowercase text")
	}
}

func TestFuzzyMatchEmptyPattern(t *testing.T) {
	slab := NewFuzzySlab()
	result := FuzzyMatch("anything", nil, slab)
	if !result.Matched || result.Score != 0 {
		t.Errorf("empty pattern result = %+v", result)
	}
}

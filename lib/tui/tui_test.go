// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/ledgerline/portal/lib/banking"
)

func TestRenderScrollbarHeight(t *testing.T) {
	rendered := RenderScrollbar(DefaultTheme, 10, 100, 10, 0, true)
	lines := strings.Split(rendered, "\n")
	if len(lines) != 10 {
		t.Errorf("rendered %d lines, want 10", len(lines))
	}
}

func TestRenderScrollbarContentFits(t *testing.T) {
	rendered := RenderScrollbar(DefaultTheme, 5, 3, 10, 0, false)
	for lineNumber, line := range strings.Split(rendered, "\n") {
		if !strings.Contains(line, "┃") {
			t.Errorf("line %d = %q, want full-height thumb", lineNumber, line)
		}
	}
}

func TestRenderScrollbarThumbPosition(t *testing.T) {
	// Scrolled to the bottom: the last row must be thumb, the first
	// must be track.
	rendered := RenderScrollbar(DefaultTheme, 10, 100, 10, 90, false)
	lines := strings.Split(rendered, "\n")
	if !strings.Contains(lines[len(lines)-1], "┃") {
		t.Error("bottom row should be thumb when fully scrolled")
	}
	if strings.Contains(lines[0], "┃") {
		t.Error("top row should be track when fully scrolled")
	}
}

func TestRenderScrollbarZeroHeight(t *testing.T) {
	if rendered := RenderScrollbar(DefaultTheme, 0, 100, 10, 0, false); rendered != "" {
		t.Errorf("zero height rendered %q", rendered)
	}
}

func TestAccountStatusColor(t *testing.T) {
	theme := DefaultTheme
	if got := theme.AccountStatusColor(banking.AccountActive); got != theme.StatusActive {
		t.Errorf("active = %v, want %v", got, theme.StatusActive)
	}
	if got := theme.AccountStatusColor(banking.AccountStatus("bogus")); got != theme.FaintText {
		t.Errorf("unknown status = %v, want faint", got)
	}
}

func TestTransactionStatusColor(t *testing.T) {
	theme := DefaultTheme
	if got := theme.TransactionStatusColor(banking.TransactionCancelled); got != theme.StatusFailed {
		t.Errorf("cancelled = %v, want failed color", got)
	}
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/jsonc"

	"github.com/ledgerline/portal/lib/tui"
)

// themeOverrides is the on-disk theme customization format: a JSONC
// object mapping color slots to ANSI 256 color codes or hex strings.
// Absent fields keep the built-in default, so a theme file only has
// to name the slots it changes.
type themeOverrides struct {
	NormalText         string `json:"normal_text"`
	FaintText          string `json:"faint_text"`
	SelectedBackground string `json:"selected_background"`
	SelectedForeground string `json:"selected_foreground"`
	StatusActive       string `json:"status_active"`
	StatusFrozen       string `json:"status_frozen"`
	StatusClosed       string `json:"status_closed"`
	AmountCredit       string `json:"amount_credit"`
	AmountDebit        string `json:"amount_debit"`
	AmountTransfer     string `json:"amount_transfer"`
	StatusPending      string `json:"status_pending"`
	StatusCompleted    string `json:"status_completed"`
	StatusFailed       string `json:"status_failed"`
	UnreadAccent       string `json:"unread_accent"`
	HeaderForeground   string `json:"header_foreground"`
	BorderColor        string `json:"border_color"`
	HelpText           string `json:"help_text"`
	Accent             string `json:"accent"`
	ErrorText          string `json:"error_text"`
}

// LoadTheme reads a JSONC theme file and applies its overrides on top
// of the built-in default theme. A missing file is not an error: the
// default theme is returned unchanged. JSONC extends JSON with //
// line comments, /* block comments */, and trailing commas, which are
// stripped before parsing.
func LoadTheme(path string) (tui.Theme, error) {
	theme := tui.DefaultTheme
	if path == "" {
		return theme, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return theme, nil
		}
		return theme, fmt.Errorf("reading theme %s: %w", path, err)
	}

	var overrides themeOverrides
	if err := json.Unmarshal(jsonc.ToJSON(data), &overrides); err != nil {
		return theme, fmt.Errorf("parsing theme %s: %w", path, err)
	}

	applyOverride(&theme.NormalText, overrides.NormalText)
	applyOverride(&theme.FaintText, overrides.FaintText)
	applyOverride(&theme.SelectedBackground, overrides.SelectedBackground)
	applyOverride(&theme.SelectedForeground, overrides.SelectedForeground)
	applyOverride(&theme.StatusActive, overrides.StatusActive)
	applyOverride(&theme.StatusFrozen, overrides.StatusFrozen)
	applyOverride(&theme.StatusClosed, overrides.StatusClosed)
	applyOverride(&theme.AmountCredit, overrides.AmountCredit)
	applyOverride(&theme.AmountDebit, overrides.AmountDebit)
	applyOverride(&theme.AmountTransfer, overrides.AmountTransfer)
	applyOverride(&theme.StatusPending, overrides.StatusPending)
	applyOverride(&theme.StatusCompleted, overrides.StatusCompleted)
	applyOverride(&theme.StatusFailed, overrides.StatusFailed)
	applyOverride(&theme.UnreadAccent, overrides.UnreadAccent)
	applyOverride(&theme.HeaderForeground, overrides.HeaderForeground)
	applyOverride(&theme.BorderColor, overrides.BorderColor)
	applyOverride(&theme.HelpText, overrides.HelpText)
	applyOverride(&theme.Accent, overrides.Accent)
	applyOverride(&theme.ErrorText, overrides.ErrorText)

	return theme, nil
}

func applyOverride(slot *lipgloss.Color, value string) {
	if value != "" {
		*slot = lipgloss.Color(value)
	}
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/portal/lib/banking"
)

// Theme defines the color palette for the portal's terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Account status colors.
	StatusActive lipgloss.Color
	StatusFrozen lipgloss.Color
	StatusClosed lipgloss.Color

	// Transaction direction colors: money in, money out, transfers.
	AmountCredit   lipgloss.Color
	AmountDebit    lipgloss.Color
	AmountTransfer lipgloss.Color

	// Transaction processing state.
	StatusPending   lipgloss.Color
	StatusCompleted lipgloss.Color
	StatusFailed    lipgloss.Color

	// Notification read state: unread rows get the accent.
	UnreadAccent lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	Accent           lipgloss.Color
	ErrorText        lipgloss.Color
}

// AccountStatusColor returns the color for an account status.
// Unknown values return FaintText.
func (theme Theme) AccountStatusColor(status banking.AccountStatus) lipgloss.Color {
	switch status {
	case banking.AccountActive:
		return theme.StatusActive
	case banking.AccountFrozen:
		return theme.StatusFrozen
	case banking.AccountClosed:
		return theme.StatusClosed
	default:
		return theme.FaintText
	}
}

// TransactionTypeColor returns the color for a transaction direction.
func (theme Theme) TransactionTypeColor(transactionType banking.TransactionType) lipgloss.Color {
	switch transactionType {
	case banking.TransactionCredit:
		return theme.AmountCredit
	case banking.TransactionDebit:
		return theme.AmountDebit
	case banking.TransactionTransfer:
		return theme.AmountTransfer
	default:
		return theme.NormalText
	}
}

// TransactionStatusColor returns the color for a processing state.
func (theme Theme) TransactionStatusColor(status banking.TransactionStatus) lipgloss.Color {
	switch status {
	case banking.TransactionPending:
		return theme.StatusPending
	case banking.TransactionCompleted:
		return theme.StatusCompleted
	case banking.TransactionFailed, banking.TransactionCancelled:
		return theme.StatusFailed
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	StatusActive: lipgloss.Color("114"), // green
	StatusFrozen: lipgloss.Color("220"), // yellow/amber
	StatusClosed: lipgloss.Color("245"), // gray

	AmountCredit:   lipgloss.Color("114"), // green: money in
	AmountDebit:    lipgloss.Color("203"), // soft red: money out
	AmountTransfer: lipgloss.Color("75"),  // blue

	StatusPending:   lipgloss.Color("220"), // amber
	StatusCompleted: lipgloss.Color("114"), // green
	StatusFailed:    lipgloss.Color("196"), // red

	UnreadAccent: lipgloss.Color("220"), // amber marker for unread rows

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	Accent:           lipgloss.Color("75"),
	ErrorText:        lipgloss.Color("196"),
}

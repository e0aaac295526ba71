// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the portal TUI.
type KeyMap struct {
	// List navigation.
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Tab switching.
	TabDashboard     key.Binding
	TabAccounts      key.Binding
	TabTransactions  key.Binding
	TabNotifications key.Binding
	TabProfile       key.Binding
	NextField        key.Binding

	// Data actions.
	Refresh key.Binding
	Select  key.Binding
	Back    key.Binding
	New     key.Binding

	// Filter (transactions tab).
	FilterActivate key.Binding

	// Account actions.
	Freeze key.Binding
	Delete key.Binding

	// Transaction actions.
	Transfer key.Binding

	// Notification actions.
	MarkRead key.Binding

	// Profile actions.
	Edit           key.Binding
	ChangePassword key.Binding

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	TabDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	TabAccounts: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "accounts"),
	),
	TabTransactions: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "transactions"),
	),
	TabNotifications: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "notifications"),
	),
	TabProfile: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "profile"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Freeze: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "freeze/activate"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Transfer: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "transfer"),
	),
	MarkRead: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark read"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	ChangePassword: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "password"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "log out"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

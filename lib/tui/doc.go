// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface primitives for
// the portal's interactive views. Built on bubbletea (Elm
// architecture), it holds the theme, scrollbar rendering, and fuzzy
// matching used by the page models in lib/portalui.
//
// The theme covers both universal chrome (text, selection, borders)
// and the banking semantics that recur across pages: account statuses,
// transaction directions, notification read state.
package tui

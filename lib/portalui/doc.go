// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package portalui implements the interactive terminal interface for
// the banking portal as a bubbletea program.
//
// The root Model is a state machine over the session lifecycle: a
// loading screen while the stored session is restored, the login and
// registration forms while unauthenticated, and the tabbed main view
// (dashboard, accounts, transactions, notifications, profile) once a
// session is established. Session changes — login, logout, and server
// side invalidation via an expired token — arrive as events from the
// session manager and drive exactly one screen transition each.
//
// Each tab owns its data and fetches it asynchronously through the
// banking services. Responses carry the fetch sequence number under
// which they were issued; a response from a superseded fetch is
// discarded so a slow reply can never overwrite newer data.
package portalui

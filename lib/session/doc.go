// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package session owns the portal's authentication state.
//
// Store persists the session — bearer token plus the current-user
// snapshot — as one JSON file, so the pair is structurally written and
// cleared together. Manager layers the in-memory lifecycle on top:
// initialization from disk at startup, login/register/logout, profile
// updates, and invalidation when a backend rejects the token.
//
// Manager is the single writer of the store. The 401 path reaches it
// through Invalidate, which the composition root installs as the
// gateway's unauthorized handler — the transport layer itself never
// mutates session state.
package session

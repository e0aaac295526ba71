// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package banking holds the portal's domain model and the typed
// services over the four backend REST APIs.
//
// The types mirror the backend wire shapes exactly — the portal never
// derives or recomputes server-authoritative values (balances,
// statuses, timestamps); it renders what the backends return. Services
// are stateless method tables: each call builds a request path, runs
// it through the apiclient gateway, and returns the unwrapped value.
// No retries, no caching, no error classification.
package banking

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package apiclient is the single outbound HTTP gateway for the portal.
//
// Every request from the domain services passes through one Client,
// which resolves the target backend from the request path (the four
// banking services each own a path prefix), attaches the bearer token
// when a session is present, and bounds every call with a fixed
// timeout.
//
// Backend responses share a common envelope:
//
//	{"success": bool, "message": string, "data": <payload>, "error": string}
//
// The generic helpers (Get, Post, Put, Delete) unwrap the data field
// into a typed value. Login and register are the deliberate exception:
// the session layer needs the token and user snapshot from the same
// response atomically, so those calls go through Client.Do and decode
// the full payload themselves.
//
// Error responses decode into *Error carrying the HTTP status and the
// backend's message. A 401 additionally fires the installed
// unauthorized handler (exactly once per response) before the error
// propagates; the transport itself never mutates session state — the
// handler, installed by the composition root, owns the teardown.
package apiclient

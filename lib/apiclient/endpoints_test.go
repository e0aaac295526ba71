// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import "testing"

var testEndpoints = Endpoints{
	Auth:          "http://auth:8082",
	Accounts:      "http://accounts:8080",
	Transactions:  "http://transactions:8081",
	Notifications: "http://notifications:8083",
}

func TestResolve(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/api/auth/login", testEndpoints.Auth},
		{"/api/auth/profile", testEndpoints.Auth},
		{"/api/accounts/", testEndpoints.Accounts},
		{"/api/accounts/42/balance", testEndpoints.Accounts},
		{"/api/transactions/", testEndpoints.Transactions},
		{"/api/transactions/account/7", testEndpoints.Transactions},
		{"/api/notifications/", testEndpoints.Notifications},
		{"/api/notifications/3/read", testEndpoints.Notifications},
		// No matching prefix falls back to accounts.
		{"/api/unknown", testEndpoints.Accounts},
		{"/health", testEndpoints.Accounts},
		{"", testEndpoints.Accounts},
	}

	for _, tc := range cases {
		if got := testEndpoints.Resolve(tc.path); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

// The accounts prefix must not shadow the other services: each prefix
// is matched as a full literal, so sibling prefixes sharing the /api/
// root resolve to their own backend.
func TestResolveNoPrefixShadowing(t *testing.T) {
	for path, want := range map[string]string{
		"/api/auth":          testEndpoints.Auth,
		"/api/accounts":      testEndpoints.Accounts,
		"/api/transactions":  testEndpoints.Transactions,
		"/api/notifications": testEndpoints.Notifications,
	} {
		if got := testEndpoints.Resolve(path); got != want {
			t.Errorf("Resolve(%q) = %q, want %q", path, got, want)
		}
	}
}

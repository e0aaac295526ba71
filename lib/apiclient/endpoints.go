// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import "strings"

// Path prefixes owned by each backend service. Resolution tests the
// full literal prefix so that /api/accounts never shadows the other
// three.
const (
	PrefixAuth          = "/api/auth"
	PrefixAccounts      = "/api/accounts"
	PrefixTransactions  = "/api/transactions"
	PrefixNotifications = "/api/notifications"
)

// Endpoints holds the base URL of each backend service.
type Endpoints struct {
	Auth          string
	Accounts      string
	Transactions  string
	Notifications string
}

// Resolve returns the base URL for a request path. Prefixes are tested
// in a fixed order; a path matching none of them falls back to the
// accounts service, matching the original portal router.
func (e Endpoints) Resolve(path string) string {
	switch {
	case strings.HasPrefix(path, PrefixAuth):
		return e.Auth
	case strings.HasPrefix(path, PrefixAccounts):
		return e.Accounts
	case strings.HasPrefix(path, PrefixTransactions):
		return e.Transactions
	case strings.HasPrefix(path, PrefixNotifications):
		return e.Notifications
	}
	return e.Accounts
}

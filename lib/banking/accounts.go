// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package banking

import (
	"context"
	"fmt"

	"github.com/ledgerline/portal/lib/apiclient"
)

// AccountsService talks to the accounts backend.
type AccountsService struct {
	client *apiclient.Client
}

// NewAccountsService creates an AccountsService over the shared
// gateway.
func NewAccountsService(client *apiclient.Client) *AccountsService {
	return &AccountsService{client: client}
}

// List returns the current user's accounts.
func (s *AccountsService) List(ctx context.Context) ([]Account, error) {
	return apiclient.Get[[]Account](ctx, s.client, "/api/accounts/")
}

// Get returns one account by id.
func (s *AccountsService) Get(ctx context.Context, id uint) (Account, error) {
	return apiclient.Get[Account](ctx, s.client, fmt.Sprintf("/api/accounts/%d", id))
}

// Create opens a new account of the given type.
func (s *AccountsService) Create(ctx context.Context, request CreateAccountRequest) (Account, error) {
	return apiclient.Post[Account](ctx, s.client, "/api/accounts/", request)
}

// Update changes an account's status. The backend owns the permitted
// transitions.
func (s *AccountsService) Update(ctx context.Context, id uint, request UpdateAccountRequest) (Account, error) {
	return apiclient.Put[Account](ctx, s.client, fmt.Sprintf("/api/accounts/%d", id), request)
}

// Delete removes an account. The backend refuses unless the balance is
// zero; that rule is not re-validated here.
func (s *AccountsService) Delete(ctx context.Context, id uint) error {
	return apiclient.Delete(ctx, s.client, fmt.Sprintf("/api/accounts/%d", id))
}

// Balance returns the current balance of an account.
func (s *AccountsService) Balance(ctx context.Context, id uint) (Balance, error) {
	return apiclient.Get[Balance](ctx, s.client, fmt.Sprintf("/api/accounts/%d/balance", id))
}

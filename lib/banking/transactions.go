// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package banking

import (
	"context"
	"fmt"

	"github.com/ledgerline/portal/lib/apiclient"
)

// TransactionsService talks to the transactions backend.
type TransactionsService struct {
	client *apiclient.Client
}

// NewTransactionsService creates a TransactionsService over the shared
// gateway.
func NewTransactionsService(client *apiclient.Client) *TransactionsService {
	return &TransactionsService{client: client}
}

// List returns the current user's transactions, newest first.
func (s *TransactionsService) List(ctx context.Context) ([]Transaction, error) {
	return apiclient.Get[[]Transaction](ctx, s.client, "/api/transactions/")
}

// Get returns one transaction by id.
func (s *TransactionsService) Get(ctx context.Context, id uint) (Transaction, error) {
	return apiclient.Get[Transaction](ctx, s.client, fmt.Sprintf("/api/transactions/%d", id))
}

// ForAccount returns the transactions of a single account.
func (s *TransactionsService) ForAccount(ctx context.Context, accountID uint) ([]Transaction, error) {
	return apiclient.Get[[]Transaction](ctx, s.client, fmt.Sprintf("/api/transactions/account/%d", accountID))
}

// Create records a debit or credit on an account.
func (s *TransactionsService) Create(ctx context.Context, request TransactionRequest) (Transaction, error) {
	return apiclient.Post[Transaction](ctx, s.client, "/api/transactions/", request)
}

// Transfer moves funds between two accounts.
func (s *TransactionsService) Transfer(ctx context.Context, request TransferRequest) (Transaction, error) {
	return apiclient.Post[Transaction](ctx, s.client, "/api/transactions/transfer", request)
}

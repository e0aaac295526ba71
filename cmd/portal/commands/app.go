// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"

	"github.com/ledgerline/portal/cmd/portal/cli"
	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/config"
	"github.com/ledgerline/portal/lib/session"
)

// app wires the portal's client-side stack for a single command
// invocation: configuration, the HTTP gateway, the four backend
// services, and the persisted session. Every command builds one via
// [newApp] and tears nothing down — there is no long-lived state
// beyond the session file.
type app struct {
	Config        *config.Config
	Client        *apiclient.Client
	Session       *session.Manager
	Auth          *banking.AuthService
	Accounts      *banking.AccountsService
	Transactions  *banking.TransactionsService
	Notifications *banking.NotificationsService
}

// newApp builds the command-side composition root. The session is
// restored from disk before returning, so callers can immediately ask
// Session.Authenticated(). A 401 from any backend invalidates the
// session through the client's unauthorized hook; the next request in
// the same invocation fails fast with a sign-in hint.
func newApp(logger *slog.Logger) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	store := session.NewStore(cfg.SessionFile)

	// The token source closes over the manager, which is built after
	// the client (the manager needs the auth service, which needs the
	// client). No request is made before newApp returns.
	var manager *session.Manager
	client, err := apiclient.NewClient(apiclient.ClientConfig{
		Endpoints: apiclient.Endpoints{
			Auth:          cfg.Endpoints.Auth,
			Accounts:      cfg.Endpoints.Accounts,
			Transactions:  cfg.Endpoints.Transactions,
			Notifications: cfg.Endpoints.Notifications,
		},
		Tokens: apiclient.TokenFunc(func() string {
			if manager == nil {
				return ""
			}
			return manager.Token()
		}),
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	auth := banking.NewAuthService(client)
	manager = session.NewManager(store, auth, logger)
	client.SetUnauthorizedHandler(manager.Invalidate)
	manager.Init()

	return &app{
		Config:        cfg,
		Client:        client,
		Session:       manager,
		Auth:          auth,
		Accounts:      banking.NewAccountsService(client),
		Transactions:  banking.NewTransactionsService(client),
		Notifications: banking.NewNotificationsService(client),
	}, nil
}

// requireSession returns an unauthorized error when no session is
// restored. Commands that talk to protected endpoints call this first
// so the user gets a sign-in hint instead of a backend 401.
func (application *app) requireSession() error {
	if !application.Session.Authenticated() {
		return cli.UnauthorizedError("not signed in — run \"portal login\"")
	}
	return nil
}

// describe wraps a backend failure with the attempted action. A 401 is
// reported as an expired session instead: by the time the error
// reaches here the unauthorized hook has already cleared the stored
// session, so the only useful advice is to sign in again.
func describe(err error, format string, args ...any) error {
	if apiclient.IsUnauthorized(err) {
		return cli.UnauthorizedError("session expired — run \"portal login\"")
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

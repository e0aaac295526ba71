// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/ledgerline/portal/cmd/portal/cli"
	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
)

func loginCommand() *cli.Command {
	var email string
	var password string

	return &cli.Command{
		Name:    "login",
		Summary: "Sign in and persist the session",
		Description: `Authenticate against the auth backend and persist the session token
and user snapshot to the session file. Subsequent commands reuse the
stored session until it expires or "portal logout" clears it.

When --password is omitted the password is prompted without echo.`,
		Usage: "portal login --email EMAIL [--password PASSWORD]",
		Examples: []cli.Example{
			{
				Description: "Sign in with an interactive password prompt",
				Command:     "portal login --email alice@example.com",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.StringVarP(&email, "email", "e", "", "account email address")
			flags.StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if email == "" {
				return cli.ValidationError("--email is required")
			}
			if password == "" {
				prompted, err := cli.PromptPassword("Password")
				if err != nil {
					return err
				}
				password = prompted
			}
			if password == "" {
				return cli.ValidationError("password must not be empty")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.Session.Login(ctx, banking.LoginRequest{
				Email:    email,
				Password: password,
			}); err != nil {
				// A 401 here is bad credentials, not an expired
				// session, so skip the describe helper.
				return fmt.Errorf("signing in: %s", apiclient.ErrorMessage(err, err.Error()))
			}

			user := application.Session.User()
			logger.Info("signed in", "email", user.Email, "session_file", application.Config.SessionFile)
			fmt.Printf("signed in as %s\n", user.FullName())
			return nil
		},
	}
}

func registerCommand() *cli.Command {
	var email string
	var password string
	var firstName string
	var lastName string
	var phone string

	return &cli.Command{
		Name:    "register",
		Summary: "Create a new user and sign in",
		Description: `Register a new user with the auth backend. Registration returns a
session token, so a successful registration leaves you signed in.`,
		Usage: "portal register --email EMAIL --first-name NAME --last-name NAME [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("register", pflag.ContinueOnError)
			flags.StringVarP(&email, "email", "e", "", "account email address")
			flags.StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
			flags.StringVar(&firstName, "first-name", "", "given name")
			flags.StringVar(&lastName, "last-name", "", "family name")
			flags.StringVar(&phone, "phone", "", "phone number (optional)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if email == "" {
				return cli.ValidationError("--email is required")
			}
			if firstName == "" || lastName == "" {
				return cli.ValidationError("--first-name and --last-name are required")
			}
			if password == "" {
				prompted, err := cli.PromptPassword("Password")
				if err != nil {
					return err
				}
				password = prompted
			}
			if len(password) < 8 {
				return cli.ValidationError("password must be at least 8 characters")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.Session.Register(ctx, banking.RegisterRequest{
				Email:     email,
				Password:  password,
				FirstName: firstName,
				LastName:  lastName,
				Phone:     phone,
			}); err != nil {
				return fmt.Errorf("registering: %s", apiclient.ErrorMessage(err, err.Error()))
			}

			fmt.Printf("registered and signed in as %s\n", application.Session.User().FullName())
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:    "logout",
		Summary: "Sign out and clear the stored session",
		Description: `Clear the persisted session. The backend is notified on a best-effort
basis; the local session file is removed regardless.`,
		Usage: "portal logout",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if !application.Session.Authenticated() {
				fmt.Println("not signed in")
				return nil
			}
			// Best effort: a dead backend must not trap the user in a
			// signed-in state.
			if err := application.Auth.Logout(ctx); err != nil {
				logger.Warn("backend logout failed", "error", err)
			}
			application.Session.Logout()
			fmt.Println("signed out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "whoami",
		Summary: "Show the signed-in user",
		Usage:   "portal whoami [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			// Refresh from the backend so a stale snapshot (profile
			// edited elsewhere) does not mislead.
			user, err := application.Auth.Profile(ctx)
			if err != nil {
				return describe(err, "fetching profile")
			}
			if outputJSON {
				return cli.WriteJSON(user)
			}
			return writeUser(user)
		},
	}
}

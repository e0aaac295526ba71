// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete portal CLI command tree. Every
// backend operation is reachable both as a scriptable subcommand here
// and interactively through "portal ui".
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerline/portal/cmd/portal/cli"
	"github.com/ledgerline/portal/lib/version"
)

// Root builds and returns the complete portal CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "portal",
		Description: `Ledgerline portal: terminal client for the banking backends.

Manage accounts, transactions, notifications, and your profile from
the command line, or open the interactive UI with "portal ui".`,
		Subcommands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			profileCommand(),
			changePasswordCommand(),
			accountsCommand(),
			transactionsCommand(),
			notificationsCommand(),
			uiCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					fmt.Printf("portal %s\n", version.Full())
					return nil
				},
			},
		},
	}
}

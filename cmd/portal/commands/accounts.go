// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/ledgerline/portal/cmd/portal/cli"
	"github.com/ledgerline/portal/lib/banking"
)

func accountsCommand() *cli.Command {
	return &cli.Command{
		Name:    "accounts",
		Summary: "Manage bank accounts",
		Usage:   "portal accounts <subcommand> [flags]",
		Subcommands: []*cli.Command{
			accountsListCommand(),
			accountsShowCommand(),
			accountsCreateCommand(),
			accountsUpdateCommand(),
			accountsDeleteCommand(),
			accountsBalanceCommand(),
		},
	}
}

// parseID parses the single positional resource ID every show-style
// subcommand takes.
func parseID(args []string, noun string) (uint, error) {
	if len(args) != 1 {
		return 0, cli.ValidationError("expected exactly one argument: the %s ID", noun)
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, cli.ValidationError("invalid %s ID %q", noun, args[0])
	}
	return uint(id), nil
}

func accountsListCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List all accounts",
		Usage:   "portal accounts list [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
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
			accounts, err := application.Accounts.List(ctx)
			if err != nil {
				return describe(err, "listing accounts")
			}
			if outputJSON {
				return cli.WriteJSON(accounts)
			}
			if len(accounts) == 0 {
				fmt.Println("no accounts")
				return nil
			}
			return writeAccountsTable(accounts)
		},
	}
}

func accountsShowCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show a single account",
		Usage:   "portal accounts show ID [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "account")
			if err != nil {
				return err
			}
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			account, err := application.Accounts.Get(ctx, id)
			if err != nil {
				return describe(err, "fetching account %d", id)
			}
			if outputJSON {
				return cli.WriteJSON(account)
			}
			return writeAccountsTable([]banking.Account{account})
		},
	}
}

func accountsCreateCommand() *cli.Command {
	var accountType string
	var currency string

	return &cli.Command{
		Name:    "create",
		Summary: "Open a new account",
		Usage:   "portal accounts create --type TYPE [--currency CUR]",
		Examples: []cli.Example{
			{
				Description: "Open a savings account",
				Command:     "portal accounts create --type savings",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.StringVarP(&accountType, "type", "t", "", "account type (checking, savings, credit)")
			flags.StringVar(&currency, "currency", "", "ISO currency code (backend default when omitted)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			switch banking.AccountType(accountType) {
			case banking.AccountChecking, banking.AccountSavings, banking.AccountCredit:
			default:
				return cli.ValidationError("--type must be checking, savings, or credit")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			account, err := application.Accounts.Create(ctx, banking.CreateAccountRequest{
				AccountType: banking.AccountType(accountType),
				Currency:    currency,
			})
			if err != nil {
				return describe(err, "creating account")
			}
			fmt.Printf("opened %s account %s (ID %d)\n", account.AccountType, account.AccountNumber, account.ID)
			return nil
		},
	}
}

func accountsUpdateCommand() *cli.Command {
	var status string

	return &cli.Command{
		Name:    "update",
		Summary: "Change an account's status",
		Description: `Change the status of an account. Freezing suspends transactions;
reactivating lifts the freeze. A closed account cannot change status.`,
		Usage: "portal accounts update ID --status STATUS",
		Examples: []cli.Example{
			{
				Description: "Freeze an account",
				Command:     "portal accounts update 7 --status frozen",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("update", pflag.ContinueOnError)
			flags.StringVarP(&status, "status", "s", "", "new status (active, frozen, closed)")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "account")
			if err != nil {
				return err
			}
			switch banking.AccountStatus(status) {
			case banking.AccountActive, banking.AccountFrozen, banking.AccountClosed:
			default:
				return cli.ValidationError("--status must be active, frozen, or closed")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			account, err := application.Accounts.Update(ctx, id, banking.UpdateAccountRequest{
				Status: banking.AccountStatus(status),
			})
			if err != nil {
				return describe(err, "updating account %d", id)
			}
			fmt.Printf("account %s is now %s\n", account.AccountNumber, account.Status)
			return nil
		},
	}
}

func accountsDeleteCommand() *cli.Command {
	var force bool

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete an account",
		Usage:   "portal accounts delete ID [--force]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			flags.BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "account")
			if err != nil {
				return err
			}
			if !force {
				answer, err := cli.PromptLine(fmt.Sprintf("delete account %d? [y/N]", id))
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					// Nonzero exit so scripts notice the account
					// survived, but no redundant error line.
					fmt.Println("aborted")
					return &cli.ExitError{Code: 1}
				}
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			if err := application.Accounts.Delete(ctx, id); err != nil {
				return describe(err, "deleting account %d", id)
			}
			fmt.Printf("account %d deleted\n", id)
			return nil
		},
	}
}

func accountsBalanceCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "balance",
		Summary: "Show an account's live balance",
		Usage:   "portal accounts balance ID [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("balance", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "account")
			if err != nil {
				return err
			}
			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			balance, err := application.Accounts.Balance(ctx, id)
			if err != nil {
				return describe(err, "fetching balance for account %d", id)
			}
			if outputJSON {
				return cli.WriteJSON(balance)
			}
			fmt.Println(formatAmount(balance.Balance, balance.Currency))
			return nil
		},
	}
}

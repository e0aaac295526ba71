// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/ledgerline/portal/cmd/portal/cli"
	"github.com/ledgerline/portal/lib/banking"
)

func transactionsCommand() *cli.Command {
	return &cli.Command{
		Name:    "transactions",
		Summary: "View and create transactions",
		Usage:   "portal transactions <subcommand> [flags]",
		Subcommands: []*cli.Command{
			transactionsListCommand(),
			transactionsShowCommand(),
			transactionsForAccountCommand(),
			transactionsCreateCommand(),
			transactionsTransferCommand(),
		},
	}
}

func transactionsListCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "list",
		Summary: "List transactions across all accounts",
		Usage:   "portal transactions list [--json]",
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
			transactions, err := application.Transactions.List(ctx)
			if err != nil {
				return describe(err, "listing transactions")
			}
			if outputJSON {
				return cli.WriteJSON(transactions)
			}
			if len(transactions) == 0 {
				fmt.Println("no transactions")
				return nil
			}
			return writeTransactionsTable(transactions)
		},
	}
}

func transactionsShowCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "show",
		Summary: "Show a single transaction",
		Usage:   "portal transactions show ID [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			id, err := parseID(args, "transaction")
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
			transaction, err := application.Transactions.Get(ctx, id)
			if err != nil {
				return describe(err, "fetching transaction %d", id)
			}
			if outputJSON {
				return cli.WriteJSON(transaction)
			}
			return writeTransactionsTable([]banking.Transaction{transaction})
		},
	}
}

func transactionsForAccountCommand() *cli.Command {
	var outputJSON bool

	return &cli.Command{
		Name:    "for-account",
		Summary: "List transactions on one account",
		Usage:   "portal transactions for-account ACCOUNT_ID [--json]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("for-account", pflag.ContinueOnError)
			flags.BoolVar(&outputJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			accountID, err := parseID(args, "account")
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
			transactions, err := application.Transactions.ForAccount(ctx, accountID)
			if err != nil {
				return describe(err, "listing transactions for account %d", accountID)
			}
			if outputJSON {
				return cli.WriteJSON(transactions)
			}
			if len(transactions) == 0 {
				fmt.Println("no transactions")
				return nil
			}
			return writeTransactionsTable(transactions)
		},
	}
}

func transactionsCreateCommand() *cli.Command {
	var accountID uint
	var transactionType string
	var amount float64
	var description string

	return &cli.Command{
		Name:    "create",
		Summary: "Create a debit or credit",
		Description: `Create a single-account transaction. Use "portal transactions
transfer" to move funds between two accounts.`,
		Usage: "portal transactions create --account ID --type TYPE --amount AMOUNT [--description TEXT]",
		Examples: []cli.Example{
			{
				Description: "Record a debit",
				Command:     "portal transactions create --account 7 --type debit --amount 42.50 --description 'groceries'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("create", pflag.ContinueOnError)
			flags.UintVarP(&accountID, "account", "a", 0, "account ID")
			flags.StringVarP(&transactionType, "type", "t", "", "transaction type (debit, credit)")
			flags.Float64Var(&amount, "amount", 0, "amount, must be positive")
			flags.StringVarP(&description, "description", "d", "", "free-text description")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if accountID == 0 {
				return cli.ValidationError("--account is required")
			}
			switch banking.TransactionType(transactionType) {
			case banking.TransactionDebit, banking.TransactionCredit:
			default:
				return cli.ValidationError("--type must be debit or credit")
			}
			if amount <= 0 {
				return cli.ValidationError("--amount must be positive")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			transaction, err := application.Transactions.Create(ctx, banking.TransactionRequest{
				AccountID:   accountID,
				Type:        banking.TransactionType(transactionType),
				Amount:      amount,
				Description: description,
			})
			if err != nil {
				return describe(err, "creating transaction")
			}
			fmt.Printf("transaction %d created (%s %s, %s)\n",
				transaction.ID, transaction.Type,
				formatAmount(transaction.Amount, transaction.Currency),
				transaction.Status)
			return nil
		},
	}
}

func transactionsTransferCommand() *cli.Command {
	var fromAccountID uint
	var toAccountID uint
	var amount float64
	var description string

	return &cli.Command{
		Name:    "transfer",
		Summary: "Move funds between two accounts",
		Usage:   "portal transactions transfer --from ID --to ID --amount AMOUNT [--description TEXT]",
		Examples: []cli.Example{
			{
				Description: "Move savings into checking",
				Command:     "portal transactions transfer --from 3 --to 7 --amount 250",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("transfer", pflag.ContinueOnError)
			flags.UintVar(&fromAccountID, "from", 0, "source account ID")
			flags.UintVar(&toAccountID, "to", 0, "destination account ID")
			flags.Float64Var(&amount, "amount", 0, "amount, must be positive")
			flags.StringVarP(&description, "description", "d", "", "free-text description")
			return flags
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if fromAccountID == 0 || toAccountID == 0 {
				return cli.ValidationError("--from and --to are required")
			}
			if fromAccountID == toAccountID {
				return cli.ValidationError("--from and --to must differ")
			}
			if amount <= 0 {
				return cli.ValidationError("--amount must be positive")
			}

			application, err := newApp(logger)
			if err != nil {
				return err
			}
			if err := application.requireSession(); err != nil {
				return err
			}
			transaction, err := application.Transactions.Transfer(ctx, banking.TransferRequest{
				FromAccountID: fromAccountID,
				ToAccountID:   toAccountID,
				Amount:        amount,
				Description:   description,
			})
			if err != nil {
				return describe(err, "transferring")
			}
			fmt.Printf("transfer %d created (%s, %s)\n",
				transaction.ID,
				formatAmount(transaction.Amount, transaction.Currency),
				transaction.Status)
			return nil
		},
	}
}

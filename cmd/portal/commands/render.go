// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/ledgerline/portal/lib/banking"
)

func formatAmount(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func formatTime(timestamp time.Time) string {
	if timestamp.IsZero() {
		return "-"
	}
	return timestamp.Format("2006-01-02 15:04")
}

func writeAccountsTable(accounts []banking.Account) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNUMBER\tTYPE\tBALANCE\tSTATUS\tOPENED")
	for _, account := range accounts {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\t%s\n",
			account.ID,
			account.AccountNumber,
			account.AccountType,
			formatAmount(account.Balance, account.Currency),
			account.Status,
			formatTime(account.CreatedAt),
		)
	}
	return writer.Flush()
}

func writeTransactionsTable(transactions []banking.Transaction) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tACCOUNT\tTYPE\tAMOUNT\tSTATUS\tCREATED\tDESCRIPTION")
	for _, transaction := range transactions {
		fmt.Fprintf(writer, "%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			transaction.ID,
			transaction.AccountID,
			transaction.Type,
			formatAmount(transaction.Amount, transaction.Currency),
			transaction.Status,
			formatTime(transaction.CreatedAt),
			transaction.Description,
		)
	}
	return writer.Flush()
}

func writeNotificationsTable(notifications []banking.Notification) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tTYPE\tREAD\tSENT\tTITLE")
	for _, notification := range notifications {
		read := "yes"
		if !notification.IsRead {
			read = "no"
		}
		sent := "-"
		if notification.SentAt != nil {
			sent = formatTime(*notification.SentAt)
		}
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n",
			notification.ID,
			notification.Type,
			read,
			sent,
			notification.Title,
		)
	}
	return writer.Flush()
}

func writeUser(user banking.User) error {
	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "ID:\t%d\n", user.ID)
	fmt.Fprintf(writer, "Name:\t%s\n", user.FullName())
	fmt.Fprintf(writer, "Email:\t%s\n", user.Email)
	if user.Phone != "" {
		fmt.Fprintf(writer, "Phone:\t%s\n", user.Phone)
	}
	fmt.Fprintf(writer, "Member since:\t%s\n", formatTime(user.CreatedAt))
	return writer.Flush()
}

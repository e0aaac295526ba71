// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

// dashboardRecentCount is how many of the newest transactions the
// dashboard shows.
const dashboardRecentCount = 5

// dashboardLoadedMsg carries the joint result of the dashboard's two
// fetches. Either failure fails the whole load: a dashboard with half
// its numbers would be worse than one with an error banner.
type dashboardLoadedMsg struct {
	seq          int
	accounts     []banking.Account
	transactions []banking.Transaction
	err          error
}

// dashboardModel is the overview tab: balance totals per currency,
// the account list, and the most recent transactions.
type dashboardModel struct {
	services Services
	theme    tui.Theme

	width  int
	height int

	// seq identifies the in-flight fetch; responses carrying an older
	// value are dropped.
	seq     int
	loading bool
	errText string

	accounts []banking.Account
	recent   []banking.Transaction
}

func newDashboardModel(services Services, theme tui.Theme) dashboardModel {
	return dashboardModel{services: services, theme: theme}
}

func (model *dashboardModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

// load starts the joint accounts + transactions fetch. The two
// requests run concurrently and the result message is delivered once
// both have finished.
func (model *dashboardModel) load() tea.Cmd {
	model.seq++
	model.loading = true
	model.errText = ""

	seq := model.seq
	services := model.services
	return func() tea.Msg {
		var (
			group           sync.WaitGroup
			accounts        []banking.Account
			transactions    []banking.Transaction
			accountsErr     error
			transactionsErr error
		)
		group.Add(2)
		go func() {
			defer group.Done()
			accounts, accountsErr = services.Accounts.List(context.Background())
		}()
		go func() {
			defer group.Done()
			transactions, transactionsErr = services.Transactions.List(context.Background())
		}()
		group.Wait()

		err := accountsErr
		if err == nil {
			err = transactionsErr
		}
		return dashboardLoadedMsg{
			seq:          seq,
			accounts:     accounts,
			transactions: transactions,
			err:          err,
		}
	}
}

func (model dashboardModel) Update(message tea.Msg) (dashboardModel, tea.Cmd) {
	switch message := message.(type) {
	case dashboardLoadedMsg:
		if message.seq != model.seq {
			return model, nil
		}
		model.loading = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "loading dashboard failed")
			return model, nil
		}
		model.accounts = message.accounts
		model.recent = newestTransactions(message.transactions, dashboardRecentCount)
		return model, nil

	case tea.KeyMsg:
		if key.Matches(message, DefaultKeyMap.Refresh) {
			return model, model.load()
		}
	}
	return model, nil
}

// newestTransactions returns the count most recent transactions by
// creation time without reordering the caller's slice.
func newestTransactions(transactions []banking.Transaction, count int) []banking.Transaction {
	sorted := make([]banking.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})
	if len(sorted) > count {
		sorted = sorted[:count]
	}
	return sorted
}

// totalsByCurrency sums active account balances per currency. Closed
// accounts are excluded: their balance is historical, not spendable.
func totalsByCurrency(accounts []banking.Account) map[string]float64 {
	totals := make(map[string]float64)
	for _, account := range accounts {
		if account.Status == banking.AccountClosed {
			continue
		}
		totals[account.Currency] += account.Balance
	}
	return totals
}

func (model dashboardModel) View() string {
	if model.loading {
		return padToHeight(faintLine(model.theme, "loading…"), model.height)
	}
	if model.errText != "" {
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		return padToHeight(errorStyle.Render(model.errText), model.height)
	}

	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	var sections []string

	// Balance totals.
	totals := totalsByCurrency(model.accounts)
	currencies := make([]string, 0, len(totals))
	for currency := range totals {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	var totalParts []string
	for _, currency := range currencies {
		totalParts = append(totalParts, formatAmount(totals[currency], currency))
	}
	if len(totalParts) == 0 {
		totalParts = append(totalParts, "no accounts")
	}
	sections = append(sections,
		headerStyle.Render("Total balance"),
		"  "+strings.Join(totalParts, "  ·  "),
		"")

	// Account rows.
	sections = append(sections, headerStyle.Render(fmt.Sprintf("Accounts (%d)", len(model.accounts))))
	for _, account := range model.accounts {
		statusStyle := lipgloss.NewStyle().Foreground(model.theme.AccountStatusColor(account.Status))
		sections = append(sections, fmt.Sprintf("  %-20s %-10s %14s  %s",
			account.AccountNumber,
			account.AccountType,
			formatAmount(account.Balance, account.Currency),
			statusStyle.Render(string(account.Status))))
	}
	sections = append(sections, "")

	// Recent transactions.
	sections = append(sections, headerStyle.Render("Recent transactions"))
	if len(model.recent) == 0 {
		sections = append(sections, faintLine(model.theme, "  none yet"))
	}
	for _, transaction := range model.recent {
		typeStyle := lipgloss.NewStyle().Foreground(model.theme.TransactionTypeColor(transaction.Type))
		description := transaction.Description
		if description == "" {
			description = transaction.Reference
		}
		row := fmt.Sprintf("  %s  %-8s %14s  %s",
			formatTime(transaction.CreatedAt),
			typeStyle.Render(string(transaction.Type)),
			formatAmount(transaction.Amount, transaction.Currency),
			description)
		sections = append(sections, ansi.Truncate(row, model.width, "…"))
	}

	return padToHeight(strings.Join(sections, "\n"), model.height)
}

// faintLine renders a single line of de-emphasized text.
func faintLine(theme tui.Theme, text string) string {
	return lipgloss.NewStyle().Foreground(theme.FaintText).Render(text)
}

// padToHeight extends content with blank lines so the status bar
// stays pinned to the bottom row.
func padToHeight(content string, height int) string {
	lines := strings.Count(content, "\n") + 1
	if lines >= height {
		return content
	}
	return content + strings.Repeat("\n", height-lines)
}

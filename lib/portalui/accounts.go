// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

// accountsMode is the interaction state within the accounts tab.
type accountsMode int

const (
	accountsModeList accountsMode = iota
	accountsModeDetail
	accountsModeCreate
	accountsModeConfirmDelete
)

// accountsListMsg carries a completed account list fetch.
type accountsListMsg struct {
	seq      int
	accounts []banking.Account
	err      error
}

// accountBalanceMsg carries a completed live-balance fetch for the
// detail view.
type accountBalanceMsg struct {
	seq       int
	accountID uint
	balance   banking.Balance
	err       error
}

// accountMutatedMsg reports a create, status change, or delete. On
// success the list is refetched so the view reflects the server's
// record rather than a local guess.
type accountMutatedMsg struct {
	err error
}

const (
	createAccountFieldType = iota
	createAccountFieldCurrency
)

// accountsModel is the accounts tab: list, live-balance detail, and
// account lifecycle actions.
type accountsModel struct {
	services Services
	theme    tui.Theme

	width  int
	height int

	mode    accountsMode
	seq     int
	loading bool
	errText string

	accounts     []banking.Account
	cursor       int
	scrollOffset int

	// Detail state: the selected account plus its freshly fetched
	// balance (the list's balance field may be stale).
	detailAccount banking.Account
	detailBalance *banking.Balance

	createForm form
}

func newAccountsModel(services Services, theme tui.Theme) accountsModel {
	createForm := newForm([]string{"Type", "Currency"}, func(index int, input *textinput.Model) {
		switch index {
		case createAccountFieldType:
			input.Placeholder = "checking | savings | credit"
		case createAccountFieldCurrency:
			input.Placeholder = "USD"
		}
	})
	return accountsModel{services: services, theme: theme, createForm: createForm}
}

func (model *accountsModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

func (model accountsModel) capturesInput() bool {
	return model.mode == accountsModeCreate
}

// load starts an account list fetch and returns to list mode.
func (model *accountsModel) load() tea.Cmd {
	model.seq++
	model.loading = true
	model.errText = ""
	model.mode = accountsModeList

	seq := model.seq
	services := model.services
	return func() tea.Msg {
		accounts, err := services.Accounts.List(context.Background())
		return accountsListMsg{seq: seq, accounts: accounts, err: err}
	}
}

func (model accountsModel) Update(message tea.Msg) (accountsModel, tea.Cmd) {
	switch message := message.(type) {
	case accountsListMsg:
		if message.seq != model.seq {
			return model, nil
		}
		model.loading = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "loading accounts failed")
			return model, nil
		}
		model.accounts = message.accounts
		model.clampCursor()
		return model, nil

	case accountBalanceMsg:
		if message.seq != model.seq || model.mode != accountsModeDetail ||
			message.accountID != model.detailAccount.ID {
			return model, nil
		}
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "loading balance failed")
			return model, nil
		}
		balance := message.balance
		model.detailBalance = &balance
		return model, nil

	case accountMutatedMsg:
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "account update failed")
			return model, nil
		}
		return model, model.load()

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model accountsModel) handleKey(message tea.KeyMsg) (accountsModel, tea.Cmd) {
	keys := DefaultKeyMap

	switch model.mode {
	case accountsModeCreate:
		switch message.Type {
		case tea.KeyEnter:
			return model.submitCreate()
		case tea.KeyEsc:
			model.mode = accountsModeList
			model.errText = ""
			return model, nil
		}
		var cmd tea.Cmd
		model.createForm, cmd = model.createForm.Update(message)
		return model, cmd

	case accountsModeConfirmDelete:
		switch {
		case message.String() == "y":
			return model.deleteSelected()
		default:
			model.mode = accountsModeList
		}
		return model, nil

	case accountsModeDetail:
		switch {
		case key.Matches(message, keys.Back):
			model.mode = accountsModeList
			model.errText = ""
		case key.Matches(message, keys.Refresh):
			return model, model.fetchDetailBalance()
		case key.Matches(message, keys.Freeze):
			return model.toggleFrozen()
		}
		return model, nil
	}

	// List mode.
	switch {
	case key.Matches(message, keys.Up):
		model.moveCursor(-1)
	case key.Matches(message, keys.Down):
		model.moveCursor(1)
	case key.Matches(message, keys.Home):
		model.cursor = 0
		model.clampCursor()
	case key.Matches(message, keys.End):
		model.cursor = len(model.accounts) - 1
		model.clampCursor()
	case key.Matches(message, keys.Refresh):
		return model, model.load()
	case key.Matches(message, keys.New):
		model.mode = accountsModeCreate
		model.createForm.Reset()
		model.errText = ""
		return model, textinput.Blink
	case key.Matches(message, keys.Select):
		if account, ok := model.selected(); ok {
			model.mode = accountsModeDetail
			model.detailAccount = account
			model.detailBalance = nil
			model.errText = ""
			return model, model.fetchDetailBalance()
		}
	case key.Matches(message, keys.Freeze):
		return model.toggleFrozen()
	case key.Matches(message, keys.Delete):
		if _, ok := model.selected(); ok {
			model.mode = accountsModeConfirmDelete
		}
	}
	return model, nil
}

func (model accountsModel) selected() (banking.Account, bool) {
	if model.cursor < 0 || model.cursor >= len(model.accounts) {
		return banking.Account{}, false
	}
	return model.accounts[model.cursor], true
}

func (model *accountsModel) moveCursor(delta int) {
	model.cursor += delta
	model.clampCursor()
}

func (model *accountsModel) clampCursor() {
	if model.cursor >= len(model.accounts) {
		model.cursor = len(model.accounts) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	visible := model.listHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if visible > 0 && model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

// listHeight is the number of rows available for account entries
// after the page header.
func (model accountsModel) listHeight() int {
	height := model.height - 2
	if height < 1 {
		height = 1
	}
	return height
}

// fetchDetailBalance requests the authoritative balance for the
// account open in the detail view.
func (model *accountsModel) fetchDetailBalance() tea.Cmd {
	seq := model.seq
	accountID := model.detailAccount.ID
	services := model.services
	return func() tea.Msg {
		balance, err := services.Accounts.Balance(context.Background(), accountID)
		return accountBalanceMsg{seq: seq, accountID: accountID, balance: balance, err: err}
	}
}

// toggleFrozen freezes an active account or reactivates a frozen
// one. Closed accounts have no further transitions.
func (model accountsModel) toggleFrozen() (accountsModel, tea.Cmd) {
	account := model.detailAccount
	if model.mode != accountsModeDetail {
		selected, ok := model.selected()
		if !ok {
			return model, nil
		}
		account = selected
	}

	var target banking.AccountStatus
	switch account.Status {
	case banking.AccountActive:
		target = banking.AccountFrozen
	case banking.AccountFrozen:
		target = banking.AccountActive
	default:
		model.errText = "closed accounts cannot change status"
		return model, nil
	}

	model.mode = accountsModeList
	services := model.services
	accountID := account.ID
	return model, func() tea.Msg {
		_, err := services.Accounts.Update(context.Background(), accountID, banking.UpdateAccountRequest{
			Status: target,
		})
		return accountMutatedMsg{err: err}
	}
}

func (model accountsModel) deleteSelected() (accountsModel, tea.Cmd) {
	account, ok := model.selected()
	if !ok {
		model.mode = accountsModeList
		return model, nil
	}
	model.mode = accountsModeList
	services := model.services
	return model, func() tea.Msg {
		err := services.Accounts.Delete(context.Background(), account.ID)
		return accountMutatedMsg{err: err}
	}
}

func (model accountsModel) submitCreate() (accountsModel, tea.Cmd) {
	accountType := banking.AccountType(strings.ToLower(model.createForm.Value(createAccountFieldType)))
	switch accountType {
	case banking.AccountChecking, banking.AccountSavings, banking.AccountCredit:
	default:
		model.errText = "type must be checking, savings, or credit"
		return model, nil
	}

	request := banking.CreateAccountRequest{
		AccountType: accountType,
		Currency:    strings.ToUpper(model.createForm.Value(createAccountFieldCurrency)),
	}

	model.mode = accountsModeList
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		_, err := services.Accounts.Create(context.Background(), request)
		return accountMutatedMsg{err: err}
	}
}

func (model accountsModel) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	switch model.mode {
	case accountsModeCreate:
		var parts []string
		parts = append(parts, headerStyle.Render("New account"), "", model.createForm.View(model.theme), "")
		if model.errText != "" {
			parts = append(parts, errorStyle.Render(model.errText))
		} else {
			parts = append(parts, helpStyle.Render("Enter create · Esc cancel"))
		}
		return padToHeight(strings.Join(parts, "\n"), model.height)

	case accountsModeDetail:
		return padToHeight(model.viewDetail(), model.height)
	}

	if model.loading {
		return padToHeight(faintLine(model.theme, "loading…"), model.height)
	}

	var parts []string
	parts = append(parts, headerStyle.Render(fmt.Sprintf("Accounts (%d)", len(model.accounts))))
	if model.errText != "" {
		parts = append(parts, errorStyle.Render(model.errText))
	}

	visible := model.listHeight()
	end := model.scrollOffset + visible
	if end > len(model.accounts) {
		end = len(model.accounts)
	}
	for index := model.scrollOffset; index < end; index++ {
		account := model.accounts[index]
		statusStyle := lipgloss.NewStyle().Foreground(model.theme.AccountStatusColor(account.Status))
		row := fmt.Sprintf(" %-20s %-10s %14s  %s",
			account.AccountNumber,
			account.AccountType,
			formatAmount(account.Balance, account.Currency),
			statusStyle.Render(string(account.Status)))
		if index == model.cursor {
			row = lipgloss.NewStyle().
				Foreground(model.theme.SelectedForeground).
				Background(model.theme.SelectedBackground).
				Render(row)
		}
		parts = append(parts, row)
	}
	if len(model.accounts) == 0 && model.errText == "" {
		parts = append(parts, faintLine(model.theme, " no accounts — press n to open one"))
	}

	if model.mode == accountsModeConfirmDelete {
		parts = append(parts, "", errorStyle.Render("delete selected account? y/n"))
	} else {
		parts = append(parts, "", helpStyle.Render("Enter detail · n new · f freeze/activate · x delete · r refresh"))
	}
	return padToHeight(strings.Join(parts, "\n"), model.height)
}

func (model accountsModel) viewDetail() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(16)
	statusStyle := lipgloss.NewStyle().Foreground(model.theme.AccountStatusColor(model.detailAccount.Status))

	account := model.detailAccount
	balanceText := "fetching…"
	if model.detailBalance != nil {
		balanceText = formatAmount(model.detailBalance.Balance, model.detailBalance.Currency)
	}

	rows := []string{
		headerStyle.Render("Account " + account.AccountNumber),
		"",
		labelStyle.Render("Type") + string(account.AccountType),
		labelStyle.Render("Status") + statusStyle.Render(string(account.Status)),
		labelStyle.Render("Balance") + balanceText,
		labelStyle.Render("Opened") + formatTime(account.CreatedAt),
		"",
	}
	if model.errText != "" {
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		rows = append(rows, errorStyle.Render(model.errText))
	} else {
		helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
		rows = append(rows, helpStyle.Render("r refresh balance · f freeze/activate · Esc back"))
	}
	return strings.Join(rows, "\n")
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

// transactionsMode is the interaction state within the transactions
// tab.
type transactionsMode int

const (
	transactionsModeList transactionsMode = iota
	transactionsModeFilter
	transactionsModeDetail
	transactionsModeCreate
	transactionsModeTransfer
)

// transactionsLoadedMsg carries the joint transactions + accounts
// fetch. Accounts ride along so rows can show account numbers
// instead of raw IDs.
type transactionsLoadedMsg struct {
	seq          int
	transactions []banking.Transaction
	accounts     []banking.Account
	err          error
}

// transactionMutatedMsg reports a completed create or transfer.
type transactionMutatedMsg struct {
	err error
}

const (
	createTransactionFieldAccount = iota
	createTransactionFieldType
	createTransactionFieldAmount
	createTransactionFieldDescription
)

const (
	transferFieldFrom = iota
	transferFieldTo
	transferFieldAmount
	transferFieldDescription
)

// transactionsModel is the transactions tab: a filterable history
// list plus forms for new transactions and transfers.
type transactionsModel struct {
	services Services
	theme    tui.Theme

	width  int
	height int

	mode    transactionsMode
	seq     int
	loading bool
	errText string

	transactions []banking.Transaction
	// accountNumbers maps account IDs to display numbers for the
	// list's display-time join.
	accountNumbers map[uint]string

	// filtered holds indexes into transactions; it is the list the
	// cursor moves through. With no filter it is the identity order.
	filtered     []int
	filterInput  string
	fuzzySlab    *util.Slab
	cursor       int
	scrollOffset int

	detail banking.Transaction

	createForm   form
	transferForm form
}

func newTransactionsModel(services Services, theme tui.Theme) transactionsModel {
	createForm := newForm(
		[]string{"Account number", "Type", "Amount", "Description"},
		func(index int, input *textinput.Model) {
			switch index {
			case createTransactionFieldType:
				input.Placeholder = "debit | credit"
			case createTransactionFieldAmount:
				input.Placeholder = "0.00"
			}
		})
	transferForm := newForm(
		[]string{"From account", "To account", "Amount", "Description"},
		func(index int, input *textinput.Model) {
			if index == transferFieldAmount {
				input.Placeholder = "0.00"
			}
		})
	return transactionsModel{
		services:     services,
		theme:        theme,
		fuzzySlab:    tui.NewFuzzySlab(),
		createForm:   createForm,
		transferForm: transferForm,
	}
}

func (model *transactionsModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

func (model transactionsModel) capturesInput() bool {
	switch model.mode {
	case transactionsModeFilter, transactionsModeCreate, transactionsModeTransfer:
		return true
	}
	return false
}

// load starts the joint fetch and resets to list mode.
func (model *transactionsModel) load() tea.Cmd {
	model.seq++
	model.loading = true
	model.errText = ""
	model.mode = transactionsModeList

	seq := model.seq
	services := model.services
	return func() tea.Msg {
		var (
			group           sync.WaitGroup
			transactions    []banking.Transaction
			accounts        []banking.Account
			transactionsErr error
			accountsErr     error
		)
		group.Add(2)
		go func() {
			defer group.Done()
			transactions, transactionsErr = services.Transactions.List(context.Background())
		}()
		go func() {
			defer group.Done()
			accounts, accountsErr = services.Accounts.List(context.Background())
		}()
		group.Wait()

		err := transactionsErr
		if err == nil {
			err = accountsErr
		}
		return transactionsLoadedMsg{
			seq:          seq,
			transactions: transactions,
			accounts:     accounts,
			err:          err,
		}
	}
}

func (model transactionsModel) Update(message tea.Msg) (transactionsModel, tea.Cmd) {
	switch message := message.(type) {
	case transactionsLoadedMsg:
		if message.seq != model.seq {
			return model, nil
		}
		model.loading = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "loading transactions failed")
			return model, nil
		}
		transactions := make([]banking.Transaction, len(message.transactions))
		copy(transactions, message.transactions)
		sort.SliceStable(transactions, func(a, b int) bool {
			return transactions[a].CreatedAt.After(transactions[b].CreatedAt)
		})
		model.transactions = transactions
		model.accountNumbers = make(map[uint]string, len(message.accounts))
		for _, account := range message.accounts {
			model.accountNumbers[account.ID] = account.AccountNumber
		}
		model.applyFilter()
		return model, nil

	case transactionMutatedMsg:
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "transaction failed")
			return model, nil
		}
		return model, model.load()

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model transactionsModel) handleKey(message tea.KeyMsg) (transactionsModel, tea.Cmd) {
	keys := DefaultKeyMap

	switch model.mode {
	case transactionsModeFilter:
		switch message.Type {
		case tea.KeyEsc:
			if model.filterInput != "" {
				model.filterInput = ""
				model.applyFilter()
			} else {
				model.mode = transactionsModeList
			}
		case tea.KeyEnter:
			model.mode = transactionsModeList
		case tea.KeyBackspace:
			if model.filterInput != "" {
				runes := []rune(model.filterInput)
				model.filterInput = string(runes[:len(runes)-1])
				model.applyFilter()
			}
		case tea.KeyRunes, tea.KeySpace:
			model.filterInput += string(message.Runes)
			model.applyFilter()
		}
		return model, nil

	case transactionsModeCreate:
		switch message.Type {
		case tea.KeyEnter:
			return model.submitCreate()
		case tea.KeyEsc:
			model.mode = transactionsModeList
			model.errText = ""
			return model, nil
		}
		var cmd tea.Cmd
		model.createForm, cmd = model.createForm.Update(message)
		return model, cmd

	case transactionsModeTransfer:
		switch message.Type {
		case tea.KeyEnter:
			return model.submitTransfer()
		case tea.KeyEsc:
			model.mode = transactionsModeList
			model.errText = ""
			return model, nil
		}
		var cmd tea.Cmd
		model.transferForm, cmd = model.transferForm.Update(message)
		return model, cmd

	case transactionsModeDetail:
		if key.Matches(message, keys.Back) {
			model.mode = transactionsModeList
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
		model.cursor = len(model.filtered) - 1
		model.clampCursor()
	case key.Matches(message, keys.Refresh):
		return model, model.load()
	case key.Matches(message, keys.FilterActivate):
		model.mode = transactionsModeFilter
	case key.Matches(message, keys.New):
		model.mode = transactionsModeCreate
		model.createForm.Reset()
		model.errText = ""
		return model, textinput.Blink
	case key.Matches(message, keys.Transfer):
		model.mode = transactionsModeTransfer
		model.transferForm.Reset()
		model.errText = ""
		return model, textinput.Blink
	case key.Matches(message, keys.Select):
		if transaction, ok := model.selected(); ok {
			model.mode = transactionsModeDetail
			model.detail = transaction
		}
	case key.Matches(message, keys.Back):
		if model.filterInput != "" {
			model.filterInput = ""
			model.applyFilter()
		}
	}
	return model, nil
}

func (model transactionsModel) selected() (banking.Transaction, bool) {
	if model.cursor < 0 || model.cursor >= len(model.filtered) {
		return banking.Transaction{}, false
	}
	return model.transactions[model.filtered[model.cursor]], true
}

// applyFilter rebuilds the filtered index list. With filter text the
// rows are fuzzy-matched against a searchable string (description,
// reference, account number, type) and ordered by match score.
func (model *transactionsModel) applyFilter() {
	if model.filterInput == "" {
		model.filtered = make([]int, len(model.transactions))
		for index := range model.transactions {
			model.filtered[index] = index
		}
		model.clampCursor()
		return
	}

	type scoredRow struct {
		index int
		score int
	}
	pattern := []rune(model.filterInput)
	var matches []scoredRow
	for index, transaction := range model.transactions {
		result := tui.FuzzyMatch(model.searchText(transaction), pattern, model.fuzzySlab)
		if result.Matched {
			matches = append(matches, scoredRow{index: index, score: result.Score})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	model.filtered = make([]int, len(matches))
	for index, match := range matches {
		model.filtered[index] = match.index
	}
	model.cursor = 0
	model.scrollOffset = 0
}

// searchText is the haystack a transaction row is matched against.
func (model *transactionsModel) searchText(transaction banking.Transaction) string {
	return strings.Join([]string{
		transaction.Description,
		transaction.Reference,
		model.accountNumber(transaction.AccountID),
		string(transaction.Type),
		string(transaction.Status),
	}, " ")
}

// accountNumber resolves an account ID to its display number,
// falling back to the numeric ID for accounts no longer listed.
func (model transactionsModel) accountNumber(accountID uint) string {
	if number, ok := model.accountNumbers[accountID]; ok {
		return number
	}
	return fmt.Sprintf("#%d", accountID)
}

func (model *transactionsModel) moveCursor(delta int) {
	model.cursor += delta
	model.clampCursor()
}

func (model *transactionsModel) clampCursor() {
	if model.cursor >= len(model.filtered) {
		model.cursor = len(model.filtered) - 1
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

func (model transactionsModel) listHeight() int {
	height := model.height - 3
	if height < 1 {
		height = 1
	}
	return height
}

// resolveAccountID turns a typed account reference (display number
// or numeric ID) into the account ID.
func (model transactionsModel) resolveAccountID(text string) (uint, error) {
	for accountID, number := range model.accountNumbers {
		if number == text {
			return accountID, nil
		}
	}
	parsed, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown account %q", text)
	}
	return uint(parsed), nil
}

func (model transactionsModel) submitCreate() (transactionsModel, tea.Cmd) {
	accountID, err := model.resolveAccountID(model.createForm.Value(createTransactionFieldAccount))
	if err != nil {
		model.errText = err.Error()
		return model, nil
	}

	transactionType := banking.TransactionType(strings.ToLower(model.createForm.Value(createTransactionFieldType)))
	switch transactionType {
	case banking.TransactionDebit, banking.TransactionCredit:
	default:
		model.errText = "type must be debit or credit"
		return model, nil
	}

	amount, err := strconv.ParseFloat(model.createForm.Value(createTransactionFieldAmount), 64)
	if err != nil || amount <= 0 {
		model.errText = "amount must be a positive number"
		return model, nil
	}

	request := banking.TransactionRequest{
		AccountID:   accountID,
		Type:        transactionType,
		Amount:      amount,
		Description: model.createForm.Value(createTransactionFieldDescription),
	}

	model.mode = transactionsModeList
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		_, err := services.Transactions.Create(context.Background(), request)
		return transactionMutatedMsg{err: err}
	}
}

func (model transactionsModel) submitTransfer() (transactionsModel, tea.Cmd) {
	fromID, err := model.resolveAccountID(model.transferForm.Value(transferFieldFrom))
	if err != nil {
		model.errText = err.Error()
		return model, nil
	}
	toID, err := model.resolveAccountID(model.transferForm.Value(transferFieldTo))
	if err != nil {
		model.errText = err.Error()
		return model, nil
	}
	if fromID == toID {
		model.errText = "transfer accounts must differ"
		return model, nil
	}

	amount, err := strconv.ParseFloat(model.transferForm.Value(transferFieldAmount), 64)
	if err != nil || amount <= 0 {
		model.errText = "amount must be a positive number"
		return model, nil
	}

	request := banking.TransferRequest{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		Description:   model.transferForm.Value(transferFieldDescription),
	}

	model.mode = transactionsModeList
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		_, err := services.Transactions.Transfer(context.Background(), request)
		return transactionMutatedMsg{err: err}
	}
}

func (model transactionsModel) View() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	switch model.mode {
	case transactionsModeCreate:
		return padToHeight(model.viewForm("New transaction", model.createForm,
			"Enter submit · Esc cancel"), model.height)
	case transactionsModeTransfer:
		return padToHeight(model.viewForm("Transfer between accounts", model.transferForm,
			"Enter transfer · Esc cancel"), model.height)
	case transactionsModeDetail:
		return padToHeight(model.viewDetail(), model.height)
	}

	if model.loading {
		return padToHeight(faintLine(model.theme, "loading…"), model.height)
	}

	var parts []string
	title := fmt.Sprintf("Transactions (%d)", len(model.filtered))
	if model.mode == transactionsModeFilter || model.filterInput != "" {
		accentStyle := lipgloss.NewStyle().Foreground(model.theme.Accent)
		title += "  " + accentStyle.Render("/"+model.filterInput)
	}
	parts = append(parts, headerStyle.Render(title))
	if model.errText != "" {
		parts = append(parts, errorStyle.Render(model.errText))
	}

	visible := model.listHeight()
	end := model.scrollOffset + visible
	if end > len(model.filtered) {
		end = len(model.filtered)
	}
	for position := model.scrollOffset; position < end; position++ {
		transaction := model.transactions[model.filtered[position]]
		typeStyle := lipgloss.NewStyle().Foreground(model.theme.TransactionTypeColor(transaction.Type))
		statusStyle := lipgloss.NewStyle().Foreground(model.theme.TransactionStatusColor(transaction.Status))
		row := fmt.Sprintf(" %s  %-20s %-8s %14s  %-10s %s",
			formatTime(transaction.CreatedAt),
			model.accountNumber(transaction.AccountID),
			typeStyle.Render(string(transaction.Type)),
			formatAmount(transaction.Amount, transaction.Currency),
			statusStyle.Render(string(transaction.Status)),
			transaction.Description)
		row = ansi.Truncate(row, model.width, "…")
		if position == model.cursor && model.mode == transactionsModeList {
			row = lipgloss.NewStyle().
				Foreground(model.theme.SelectedForeground).
				Background(model.theme.SelectedBackground).
				Render(ansi.Strip(row))
		}
		parts = append(parts, row)
	}
	if len(model.filtered) == 0 && model.errText == "" {
		parts = append(parts, faintLine(model.theme, " no matching transactions"))
	}

	parts = append(parts, "", helpStyle.Render("Enter detail · / filter · n new · t transfer · r refresh"))
	return padToHeight(strings.Join(parts, "\n"), model.height)
}

func (model transactionsModel) viewForm(title string, pageForm form, help string) string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	parts := []string{headerStyle.Render(title), "", pageForm.View(model.theme), ""}
	if model.errText != "" {
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		parts = append(parts, errorStyle.Render(model.errText))
	} else {
		helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
		parts = append(parts, helpStyle.Render(help))
	}
	return strings.Join(parts, "\n")
}

func (model transactionsModel) viewDetail() string {
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText).Width(16)
	transaction := model.detail

	rows := []string{
		headerStyle.Render(fmt.Sprintf("Transaction #%d", transaction.ID)),
		"",
		labelStyle.Render("Account") + model.accountNumber(transaction.AccountID),
		labelStyle.Render("Type") + string(transaction.Type),
		labelStyle.Render("Amount") + formatAmount(transaction.Amount, transaction.Currency),
		labelStyle.Render("Status") + string(transaction.Status),
		labelStyle.Render("Created") + formatTime(transaction.CreatedAt),
	}
	if transaction.ToAccountID != nil {
		rows = append(rows, labelStyle.Render("To account")+model.accountNumber(*transaction.ToAccountID))
	}
	if transaction.ProcessedAt != nil {
		rows = append(rows, labelStyle.Render("Processed")+formatTime(*transaction.ProcessedAt))
	}
	if transaction.Reference != "" {
		rows = append(rows, labelStyle.Render("Reference")+transaction.Reference)
	}
	if transaction.Description != "" {
		rows = append(rows, labelStyle.Render("Description")+transaction.Description)
	}
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	rows = append(rows, "", helpStyle.Render("Esc back"))
	return strings.Join(rows, "\n")
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

func TestNewestTransactionsOrder(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	transactions := []banking.Transaction{
		{ID: 1, CreatedAt: base},
		{ID: 3, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
	}

	recent := newestTransactions(transactions, 2)

	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].ID != 3 || recent[1].ID != 2 {
		t.Errorf("order = [%d %d], want [3 2]", recent[0].ID, recent[1].ID)
	}
	// The input slice is untouched.
	if transactions[0].ID != 1 {
		t.Error("input slice was reordered")
	}
}

func TestTotalsByCurrencySkipsClosedAccounts(t *testing.T) {
	accounts := []banking.Account{
		{Balance: 100, Currency: "USD", Status: banking.AccountActive},
		{Balance: 50, Currency: "USD", Status: banking.AccountFrozen},
		{Balance: 900, Currency: "USD", Status: banking.AccountClosed},
		{Balance: 75, Currency: "EUR", Status: banking.AccountActive},
	}

	totals := totalsByCurrency(accounts)

	if totals["USD"] != 150 {
		t.Errorf("USD total = %v, want 150 (closed account excluded)", totals["USD"])
	}
	if totals["EUR"] != 75 {
		t.Errorf("EUR total = %v, want 75", totals["EUR"])
	}
}

func TestTransactionsFuzzyFilter(t *testing.T) {
	services := newTestServices(t, http.NotFoundHandler())
	page := newTransactionsModel(services, tui.DefaultTheme)

	page, _ = page.Update(transactionsLoadedMsg{
		seq: page.seq,
		transactions: []banking.Transaction{
			{ID: 1, AccountID: 10, Description: "grocery store"},
			{ID: 2, AccountID: 10, Description: "monthly rent"},
			{ID: 3, AccountID: 11, Description: "grocery delivery"},
		},
		accounts: []banking.Account{
			{ID: 10, AccountNumber: "ACC-10"},
			{ID: 11, AccountNumber: "ACC-11"},
		},
	})

	if len(page.filtered) != 3 {
		t.Fatalf("unfiltered rows = %d, want 3", len(page.filtered))
	}

	page.filterInput = "grocery"
	page.applyFilter()

	if len(page.filtered) != 2 {
		t.Fatalf("filtered rows = %d, want 2", len(page.filtered))
	}
	for _, index := range page.filtered {
		if page.transactions[index].ID == 2 {
			t.Error("rent row survived the grocery filter")
		}
	}

	page.filterInput = ""
	page.applyFilter()
	if len(page.filtered) != 3 {
		t.Errorf("cleared filter rows = %d, want 3", len(page.filtered))
	}
}

func TestTransactionsFilterMatchesAccountNumber(t *testing.T) {
	services := newTestServices(t, http.NotFoundHandler())
	page := newTransactionsModel(services, tui.DefaultTheme)

	page, _ = page.Update(transactionsLoadedMsg{
		seq: page.seq,
		transactions: []banking.Transaction{
			{ID: 1, AccountID: 10, Description: "coffee"},
			{ID: 2, AccountID: 11, Description: "coffee"},
		},
		accounts: []banking.Account{
			{ID: 10, AccountNumber: "ACC-0042"},
			{ID: 11, AccountNumber: "ACC-0099"},
		},
	})

	page.filterInput = "0042"
	page.applyFilter()

	if len(page.filtered) != 1 || page.transactions[page.filtered[0]].ID != 1 {
		t.Errorf("filtered = %v, want only the ACC-0042 row", page.filtered)
	}
}

func TestResolveAccountID(t *testing.T) {
	services := newTestServices(t, http.NotFoundHandler())
	page := newTransactionsModel(services, tui.DefaultTheme)
	page.accountNumbers = map[uint]string{7: "ACC-0007"}

	id, err := page.resolveAccountID("ACC-0007")
	if err != nil || id != 7 {
		t.Errorf("by number: id=%d err=%v, want 7", id, err)
	}

	id, err = page.resolveAccountID("42")
	if err != nil || id != 42 {
		t.Errorf("by numeric id: id=%d err=%v, want 42", id, err)
	}

	if _, err := page.resolveAccountID("nonsense"); err == nil {
		t.Error("unknown reference should error")
	}
}

func TestAccountCreateValidation(t *testing.T) {
	services := newTestServices(t, http.NotFoundHandler())
	page := newAccountsModel(services, tui.DefaultTheme)
	page.mode = accountsModeCreate
	page.createForm.inputs[createAccountFieldType].SetValue("bitcoin")

	page, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("invalid account type should not issue a request")
	}
	if page.errText == "" {
		t.Error("invalid account type should set a validation error")
	}
}

func TestTransferRejectsSameAccount(t *testing.T) {
	services := newTestServices(t, http.NotFoundHandler())
	page := newTransactionsModel(services, tui.DefaultTheme)
	page.accountNumbers = map[uint]string{1: "ACC-1"}
	page.mode = transactionsModeTransfer
	page.transferForm.inputs[transferFieldFrom].SetValue("ACC-1")
	page.transferForm.inputs[transferFieldTo].SetValue("1")
	page.transferForm.inputs[transferFieldAmount].SetValue("25.00")

	page, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("same-account transfer should not issue a request")
	}
	if page.errText != "transfer accounts must differ" {
		t.Errorf("errText = %q", page.errText)
	}
}

func TestNotificationCreateValidation(t *testing.T) {
	services := newTestServices(t, http.NotFoundHandler())
	page := newNotificationsModel(services, tui.DefaultTheme)
	page.mode = notificationsModeCreate
	page.createForm.inputs[createNotificationFieldType].SetValue("system")

	page, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("missing title should not issue a request")
	}
	if page.errText == "" {
		t.Error("missing title should set a validation error")
	}
}

func TestProfilePasswordValidation(t *testing.T) {
	services := newTestServices(t, http.NotFoundHandler())
	page := newProfileModel(services, tui.DefaultTheme)
	page.mode = profileModePassword
	page.passwordForm.inputs[passwordFieldCurrent].SetValue("old-password")
	page.passwordForm.inputs[passwordFieldNew].SetValue("new-password")
	page.passwordForm.inputs[passwordFieldConfirm].SetValue("other-password")

	page, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("mismatched confirmation should not issue a request")
	}
	if page.errText != "passwords do not match" {
		t.Errorf("errText = %q", page.errText)
	}
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package banking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ledgerline/portal/lib/apiclient"
)

// newTestClient builds a gateway whose four endpoints all point at the
// given handler.
func newTestClient(t *testing.T, handler http.Handler) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.NewClient(apiclient.ClientConfig{
		Endpoints: apiclient.Endpoints{
			Auth:          server.URL,
			Accounts:      server.URL,
			Transactions:  server.URL,
			Notifications: server.URL,
		},
		Tokens: apiclient.TokenFunc(func() string { return "test-token" }),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func writeEnvelope(t *testing.T, writer http.ResponseWriter, data any) {
	t.Helper()
	writer.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(writer).Encode(map[string]any{
		"success": true,
		"message": "ok",
		"data":    data,
	}); err != nil {
		t.Fatalf("encoding response: %v", err)
	}
}

func TestLoginReturnsFullPayload(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/auth/login" || request.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		}
		var body LoginRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("decoding login body: %v", err)
		}
		if body.Email != "jane@example.com" || body.Password != "hunter22" {
			t.Errorf("unexpected credentials: %+v", body)
		}
		writeEnvelope(t, writer, AuthPayload{
			Token: "fresh-token",
			User:  User{ID: 4, Email: "jane@example.com", FirstName: "Jane"},
		})
	}))

	response, err := NewAuthService(client).Login(context.Background(), LoginRequest{
		Email:    "jane@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	// Token and user arrive in the same payload, un-unwrapped.
	if response.Data.Token != "fresh-token" {
		t.Errorf("token = %q", response.Data.Token)
	}
	if response.Data.User.ID != 4 || response.Data.User.FirstName != "Jane" {
		t.Errorf("unexpected user: %+v", response.Data.User)
	}
}

func TestLoginMissingToken(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writeEnvelope(t, writer, map[string]any{"user": User{ID: 1}})
	}))

	if _, err := NewAuthService(client).Login(context.Background(), LoginRequest{}); err == nil {
		t.Fatal("expected error for auth response without token")
	}
}

func TestRegisterSendsAllFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/api/auth/register" {
			t.Errorf("path = %s", request.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(request.Body).Decode(&body)
		if body["first_name"] != "Jane" || body["phone"] != "+15550100" {
			t.Errorf("unexpected body: %v", body)
		}
		writeEnvelope(t, writer, AuthPayload{Token: "t", User: User{ID: 9}})
	}))

	_, err := NewAuthService(client).Register(context.Background(), RegisterRequest{
		Email:     "jane@example.com",
		Password:  "pw-longenough",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "+15550100",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestUpdateProfileReturnsServerRecord(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPut || request.URL.Path != "/api/auth/profile" {
			t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(request.Body).Decode(&body)
		if len(body) != 1 || body["first_name"] != "Jane" {
			t.Errorf("partial update body = %v, want only first_name", body)
		}
		// Server returns the full record, not an echo of the patch.
		writeEnvelope(t, writer, User{
			ID: 4, Email: "jane@example.com",
			FirstName: "Jane", LastName: "Doe", Phone: "+15550100",
		})
	}))

	user, err := NewAuthService(client).UpdateProfile(context.Background(), UpdateProfileRequest{FirstName: "Jane"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.LastName != "Doe" || user.Phone != "+15550100" {
		t.Errorf("server record dropped: %+v", user)
	}
}

func TestCreateAccount(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost || request.URL.Path != "/api/accounts/" {
			t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(request.Body).Decode(&body)
		if body["account_type"] != "savings" || body["currency"] != "USD" {
			t.Errorf("unexpected body: %v", body)
		}
		writeEnvelope(t, writer, Account{
			ID: 11, AccountNumber: "ACC-0011",
			AccountType: AccountSavings, Currency: "USD", Status: AccountActive,
		})
	}))

	account, err := NewAccountsService(client).Create(context.Background(), CreateAccountRequest{
		AccountType: AccountSavings,
		Currency:    "USD",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if account.ID != 11 || account.AccountNumber != "ACC-0011" {
		t.Errorf("unexpected account: %+v", account)
	}
}

func TestAccountPaths(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotMethod, gotPath = request.Method, request.URL.Path
		// List decodes the envelope data into a slice; every other
		// endpoint under test returns a single object.
		if request.URL.Path == "/api/accounts/" {
			writeEnvelope(t, writer, []Account{})
			return
		}
		writeEnvelope(t, writer, Account{})
	}))
	service := NewAccountsService(client)
	ctx := context.Background()

	cases := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
	}{
		{"list", func() error { _, err := service.List(ctx); return err }, "GET", "/api/accounts/"},
		{"get", func() error { _, err := service.Get(ctx, 42); return err }, "GET", "/api/accounts/42"},
		{"update", func() error {
			_, err := service.Update(ctx, 42, UpdateAccountRequest{Status: AccountFrozen})
			return err
		}, "PUT", "/api/accounts/42"},
		{"delete", func() error { return service.Delete(ctx, 42) }, "DELETE", "/api/accounts/42"},
		{"balance", func() error { _, err := service.Balance(ctx, 42); return err }, "GET", "/api/accounts/42/balance"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); err != nil {
				t.Fatalf("%s failed: %v", tc.name, err)
			}
			if gotMethod != tc.wantMethod || gotPath != tc.wantPath {
				t.Errorf("request = %s %s, want %s %s", gotMethod, gotPath, tc.wantMethod, tc.wantPath)
			}
		})
	}
}

func TestTransfer(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost || request.URL.Path != "/api/transactions/transfer" {
			t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		}
		var body TransferRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Fatalf("decoding transfer body: %v", err)
		}
		if body.FromAccountID != 1 || body.ToAccountID != 2 || body.Amount != 150.00 {
			t.Errorf("unexpected body: %+v", body)
		}
		destination := body.ToAccountID
		writeEnvelope(t, writer, Transaction{
			ID: 77, AccountID: body.FromAccountID,
			Type: TransactionTransfer, Amount: body.Amount,
			Status: TransactionPending, ToAccountID: &destination,
		})
	}))

	transaction, err := NewTransactionsService(client).Transfer(context.Background(), TransferRequest{
		FromAccountID: 1,
		ToAccountID:   2,
		Amount:        150.00,
	})
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if transaction.ID != 77 || transaction.ToAccountID == nil || *transaction.ToAccountID != 2 {
		t.Errorf("unexpected transaction: %+v", transaction)
	}
}

func TestTransactionPaths(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotPath = request.URL.Path
		writeEnvelope(t, writer, []Transaction{})
	}))
	service := NewTransactionsService(client)
	ctx := context.Background()

	if _, err := service.ForAccount(ctx, 7); err != nil {
		t.Fatalf("ForAccount failed: %v", err)
	}
	if gotPath != "/api/transactions/account/7" {
		t.Errorf("path = %s", gotPath)
	}
}

func TestNotificationMarkRead(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPut || request.URL.Path != "/api/notifications/5/read" {
			t.Errorf("unexpected request: %s %s", request.Method, request.URL.Path)
		}
		writeEnvelope(t, writer, Notification{ID: 5, IsRead: true})
	}))

	notification, err := NewNotificationsService(client).MarkRead(context.Background(), 5)
	if err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	if !notification.IsRead {
		t.Error("notification not marked read")
	}
}

// Services never classify errors: a backend failure surfaces to the
// caller as the gateway's typed error, untouched.
func TestServiceErrorsPropagate(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(writer).Encode(map[string]any{
			"success": false,
			"message": "insufficient funds",
		})
	}))

	_, err := NewTransactionsService(client).Create(context.Background(), TransactionRequest{
		AccountID: 1, Type: TransactionDebit, Amount: 9999,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := apiclient.ErrorMessage(err, "generic"); got != "insufficient funds" {
		t.Errorf("message = %q", got)
	}
}

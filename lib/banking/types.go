// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package banking

import "time"

// AccountType classifies a bank account.
type AccountType string

const (
	AccountChecking AccountType = "checking"
	AccountSavings  AccountType = "savings"
	AccountCredit   AccountType = "credit"
)

// AccountStatus is the lifecycle state of an account. Transitions are
// backend-owned; the portal only requests them.
type AccountStatus string

const (
	AccountActive AccountStatus = "active"
	AccountFrozen AccountStatus = "frozen"
	AccountClosed AccountStatus = "closed"
)

// TransactionType classifies a transaction.
type TransactionType string

const (
	TransactionDebit    TransactionType = "debit"
	TransactionCredit   TransactionType = "credit"
	TransactionTransfer TransactionType = "transfer"
)

// TransactionStatus is the processing state of a transaction.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionCancelled TransactionStatus = "cancelled"
)

// NotificationType is the delivery channel of a notification.
type NotificationType string

const (
	NotificationEmail  NotificationType = "email"
	NotificationSMS    NotificationType = "sms"
	NotificationPush   NotificationType = "push"
	NotificationSystem NotificationType = "system"
)

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
	NotificationFailed  NotificationStatus = "failed"
)

// User is the identity record owned by the auth backend. The portal
// caches it as the session's current-user snapshot; email is immutable
// from this client's point of view.
type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Account is a bank account. Balance is server-authoritative.
type Account struct {
	ID            uint          `json:"id"`
	UserID        uint          `json:"user_id"`
	AccountNumber string        `json:"account_number"`
	AccountType   AccountType   `json:"account_type"`
	Balance       float64       `json:"balance"`
	Currency      string        `json:"currency"`
	Status        AccountStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Transaction is a ledger movement on an account. ToAccountID is set
// for transfers only.
type Transaction struct {
	ID          uint              `json:"id"`
	AccountID   uint              `json:"account_id"`
	Type        TransactionType   `json:"type"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description,omitempty"`
	Reference   string            `json:"reference,omitempty"`
	Status      TransactionStatus `json:"status"`
	ToAccountID *uint             `json:"to_account_id,omitempty"`
	ProcessedAt *time.Time        `json:"processed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Notification is a user-facing message from the notifications backend.
type Notification struct {
	ID        uint               `json:"id"`
	UserID    uint               `json:"user_id"`
	Type      NotificationType   `json:"type"`
	Title     string             `json:"title"`
	Message   string             `json:"message"`
	Status    NotificationStatus `json:"status"`
	IsRead    bool               `json:"is_read"`
	SentAt    *time.Time         `json:"sent_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Balance is the payload of the account balance endpoint.
type Balance struct {
	AccountID uint    `json:"account_id"`
	Balance   float64 `json:"balance"`
	Currency  string  `json:"currency"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateProfileRequest carries partial profile updates. Zero-valued
// fields are omitted; the server returns the full authoritative record.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateAccountRequest opens a new account.
type CreateAccountRequest struct {
	AccountType AccountType `json:"account_type"`
	Currency    string      `json:"currency,omitempty"`
}

// UpdateAccountRequest changes an account's status (freeze, reactivate,
// close).
type UpdateAccountRequest struct {
	Status AccountStatus `json:"status"`
}

// TransactionRequest creates a debit or credit on an account.
type TransactionRequest struct {
	AccountID   uint            `json:"account_id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// TransferRequest moves funds between two accounts.
type TransferRequest struct {
	FromAccountID uint    `json:"from_account_id"`
	ToAccountID   uint    `json:"to_account_id"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description,omitempty"`
}

// CreateNotificationRequest creates a notification for the current
// user.
type CreateNotificationRequest struct {
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
}

// AuthPayload is the data field of login and register responses: the
// bearer token and the user snapshot, delivered together so the
// session layer can store the pair atomically.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponse is the full login/register response. Deliberately NOT
// unwrapped through the envelope at the service layer: the session
// manager reads token and user from the same payload.
type AuthResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    AuthPayload `json:"data"`
}

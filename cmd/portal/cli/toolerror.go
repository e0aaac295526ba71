// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so callers and scripts can
// distinguish caller mistakes from backend failures.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid arguments or flag values.
	CategoryValidation ErrorCategory = "validation"
	// CategoryNotFound indicates the requested resource does not exist.
	CategoryNotFound ErrorCategory = "not_found"
	// CategoryUnauthorized indicates a missing or expired session.
	CategoryUnauthorized ErrorCategory = "unauthorized"
	// CategoryTransient indicates a retryable failure such as an
	// unreachable backend.
	CategoryTransient ErrorCategory = "transient"
	// CategoryInternal indicates an unexpected failure.
	CategoryInternal ErrorCategory = "internal"
)

// CommandError wraps an error with a category. The category prefixes
// the message so scripted callers can classify failures without
// parsing free text.
type CommandError struct {
	Category ErrorCategory
	Err      error
}

func (commandError *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", commandError.Category, commandError.Err)
}

func (commandError *CommandError) Unwrap() error {
	return commandError.Err
}

// ValidationError creates a validation-category error.
func ValidationError(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFoundError creates a not-found-category error.
func NotFoundError(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// UnauthorizedError creates an unauthorized-category error.
func UnauthorizedError(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryUnauthorized, Err: fmt.Errorf(format, args...)}
}

// TransientError creates a transient-category error.
func TransientError(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// InternalError creates an internal-category error.
func InternalError(format string, args ...any) *CommandError {
	return &CommandError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

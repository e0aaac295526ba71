// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a structured error response from a backend service.
// Callers can use errors.As to extract the structured information:
//
//	var apiErr *apiclient.Error
//	if errors.As(err, &apiErr) {
//	    if apiErr.StatusCode == http.StatusNotFound { ... }
//	}
type Error struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
	// Message is the human-readable error description from the
	// backend envelope's message field.
	Message string `json:"message"`
	// Detail is the envelope's error field, when present. Carries
	// the lower-level cause (e.g. a validation detail).
	Detail string `json:"error"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("backend: %s (%d)", e.Message, e.StatusCode)
}

// IsUnauthorized reports whether err is a backend 401 — the signal
// that the session token is missing, expired, or revoked.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ErrorMessage extracts the backend's message from an error for
// display, falling back to the given generic string for transport
// failures and non-envelope responses.
func ErrorMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"strings"
	"testing"
)

func TestReadResponse(t *testing.T) {
	data, err := ReadResponse(strings.NewReader(`{"ok":true}`))
	if err != nil {
		t.Fatalf("ReadResponse failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestDecodeResponse(t *testing.T) {
	var payload struct {
		Balance float64 `json:"balance"`
	}
	if err := DecodeResponse(strings.NewReader(`{"balance":125.50}`), &payload); err != nil {
		t.Fatalf("DecodeResponse failed: %v", err)
	}
	if payload.Balance != 125.50 {
		t.Errorf("balance = %v", payload.Balance)
	}
}

func TestDecodeResponseInvalidJSON(t *testing.T) {
	var payload map[string]any
	if err := DecodeResponse(strings.NewReader("not json"), &payload); err == nil {
		t.Fatal("expected decode error")
	}
}

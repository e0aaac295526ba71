// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
)

// WriteJSON marshals value as indented JSON and writes it to stdout.
// Nil slices are normalized to empty slices first, so scripted callers
// never need to guard against null output where a list was expected.
func WriteJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(normalizeNilSlice(value)); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// normalizeNilSlice converts a nil slice (or a pointer to one) into an
// empty slice of the same type so it serializes as [] rather than null.
func normalizeNilSlice(value any) any {
	reflected := reflect.ValueOf(value)
	if reflected.Kind() == reflect.Pointer && !reflected.IsNil() {
		reflected = reflected.Elem()
	}
	if reflected.Kind() == reflect.Slice && reflected.IsNil() {
		return reflect.MakeSlice(reflected.Type(), 0, 0).Interface()
	}
	return value
}

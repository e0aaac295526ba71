// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ranWith []string
	root := &Command{
		Name: "portal",
		Subcommands: []*Command{
			{
				Name: "accounts",
				Subcommands: []*Command{
					{
						Name: "show",
						Run: func(_ context.Context, args []string, _ *slog.Logger) error {
							ranWith = args
							return nil
						},
					},
				},
			},
		},
	}

	err := root.Execute(context.Background(), []string{"accounts", "show", "42"}, testLogger())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(ranWith) != 1 || ranWith[0] != "42" {
		t.Errorf("Run args = %v, want [42]", ranWith)
	}
}

func TestExecuteUnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "portal",
		Subcommands: []*Command{
			{Name: "accounts", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "transactions", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"acounts"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "accounts"`) {
		t.Errorf("error %q should suggest accounts", err)
	}
}

func TestExecuteUnknownCommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "portal",
		Subcommands: []*Command{
			{Name: "accounts", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"zzzzzzzzzz"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error %q should not carry a suggestion", err)
	}
}

func TestExecuteParsesFlags(t *testing.T) {
	var verbose bool
	var positional []string
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
			return flags
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			positional = args
			return nil
		},
	}

	err := command.Execute(context.Background(), []string{"--verbose", "extra"}, testLogger())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !verbose {
		t.Error("--verbose not parsed")
	}
	if len(positional) != 1 || positional[0] != "extra" {
		t.Errorf("positional args = %v, want [extra]", positional)
	}
}

func TestExecuteUnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "list",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			flags.Bool("unread", false, "only unread")
			return flags
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--unrad"}, testLogger())
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "--unread") {
		t.Errorf("error %q should suggest --unread", err)
	}
}

func TestExecuteSubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "portal",
		Subcommands: []*Command{
			{Name: "accounts", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil, testLogger())
	if err == nil {
		t.Fatal("expected error when no subcommand given")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want subcommand required", err)
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name:        "portal",
		Description: "Test portal.",
		Subcommands: []*Command{
			{Name: "accounts", Summary: "Manage accounts"},
			{Name: "ui", Summary: "Open the UI"},
		},
	}

	var output strings.Builder
	root.PrintHelp(&output)
	help := output.String()
	for _, want := range []string{"accounts", "Manage accounts", "ui", "Open the UI", "Commands:"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"accounts", "accounts", 0},
		{"acounts", "accounts", 1},
		{"transactoins", "transactions", 2},
		{"ui", "whoami", 5},
		{"", "abc", 3},
	}
	for _, testCase := range cases {
		if got := levenshtein(testCase.a, testCase.b); got != testCase.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", testCase.a, testCase.b, got, testCase.want)
		}
	}
}

func TestCommandErrorCategoryAndUnwrap(t *testing.T) {
	wrapped := errors.New("boom")
	commandError := &CommandError{Category: CategoryTransient, Err: wrapped}
	if !strings.HasPrefix(commandError.Error(), "transient: ") {
		t.Errorf("Error() = %q, want transient prefix", commandError.Error())
	}
	if !errors.Is(commandError, wrapped) {
		t.Error("CommandError should unwrap to the inner error")
	}

	validation := ValidationError("bad input %d", 7)
	if validation.Category != CategoryValidation {
		t.Errorf("category = %q, want validation", validation.Category)
	}
	if !strings.Contains(validation.Error(), "bad input 7") {
		t.Errorf("message = %q", validation.Error())
	}
}

func TestExitErrorCode(t *testing.T) {
	var err error = &ExitError{Code: 3}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok {
		t.Fatal("ExitError should expose ExitCode()")
	}
	if coder.ExitCode() != 3 {
		t.Errorf("ExitCode() = %d, want 3", coder.ExitCode())
	}
}

func TestNormalizeNilSlice(t *testing.T) {
	var nilSlice []int
	normalized := normalizeNilSlice(nilSlice)
	result, ok := normalized.([]int)
	if !ok || result == nil || len(result) != 0 {
		t.Errorf("normalizeNilSlice(nil []int) = %#v, want empty slice", normalized)
	}

	populated := []string{"a"}
	if got := normalizeNilSlice(populated); got == nil {
		t.Error("populated slice should pass through")
	}

	if got := normalizeNilSlice(42); got != 42 {
		t.Errorf("non-slice should pass through, got %v", got)
	}
}

// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/ledgerline/portal/lib/tui"
)

func renderPlain(t *testing.T, input string, width int) string {
	t.Helper()
	return ansi.Strip(renderTerminalMarkdown(input, tui.DefaultTheme, width))
}

func TestMarkdownSoftBreakReflow(t *testing.T) {
	// Hard-wrapped source reflows: the single newline becomes a
	// space, then the paragraph wraps at the render width.
	input := "Your statement\nis ready."
	rendered := renderPlain(t, input, 80)

	if !strings.Contains(rendered, "Your statement is ready.") {
		t.Errorf("rendered = %q, want soft break joined to one line", rendered)
	}
}

func TestMarkdownParagraphWrapsAtWidth(t *testing.T) {
	input := "alpha beta gamma delta epsilon zeta eta theta"
	rendered := renderPlain(t, input, 20)

	for lineNumber, line := range strings.Split(rendered, "\n") {
		if len(line) > 20 {
			t.Errorf("line %d is %d columns: %q", lineNumber, len(line), line)
		}
	}
}

func TestMarkdownHeadingAndList(t *testing.T) {
	input := "# Payment due\n\n- first item\n- second item\n"
	rendered := renderPlain(t, input, 60)

	if !strings.Contains(rendered, "Payment due") {
		t.Errorf("heading text missing from %q", rendered)
	}
	if !strings.Contains(rendered, "- first item") {
		t.Errorf("bullet missing from %q", rendered)
	}
}

func TestMarkdownOrderedListNumbers(t *testing.T) {
	input := "1. verify the device\n2. confirm the code\n"
	rendered := renderPlain(t, input, 60)

	if !strings.Contains(rendered, "1. verify the device") {
		t.Errorf("first number missing from %q", rendered)
	}
	if !strings.Contains(rendered, "2. confirm the code") {
		t.Errorf("second number missing from %q", rendered)
	}
}

func TestMarkdownBlockquotePrefix(t *testing.T) {
	input := "> flagged for review"
	rendered := renderPlain(t, input, 60)

	if !strings.Contains(rendered, "│ flagged for review") {
		t.Errorf("blockquote prefix missing from %q", rendered)
	}
}

func TestMarkdownFencedCodePreserved(t *testing.T) {
	input := "```\nREF 2026-08-0042\n```\n"
	rendered := renderPlain(t, input, 60)

	if !strings.Contains(rendered, "REF 2026-08-0042") {
		t.Errorf("code content missing from %q", rendered)
	}
}

func TestMarkdownLinkShowsDestination(t *testing.T) {
	input := "[statement](https://portal.example/statements/42)"
	rendered := renderPlain(t, input, 80)

	if !strings.Contains(rendered, "statement (https://portal.example/statements/42)") {
		t.Errorf("link destination missing from %q", rendered)
	}
}

func TestMarkdownEmptyInput(t *testing.T) {
	if rendered := renderTerminalMarkdown("", tui.DefaultTheme, 60); rendered != "" {
		t.Errorf("empty input rendered %q", rendered)
	}
}

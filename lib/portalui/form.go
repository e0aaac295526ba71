// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/portal/lib/tui"
)

// form is a vertical stack of labeled text inputs with a single focus.
// Tab and shift+tab (or up/down on non-editing forms) cycle focus;
// the caller decides what Enter and Esc do.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

// newForm builds a form with one input per label. The first input
// receives focus. The configure callback customizes each input after
// construction (echo mode, placeholder, char limit).
func newForm(labels []string, configure func(index int, input *textinput.Model)) form {
	inputs := make([]textinput.Model, len(labels))
	for index := range labels {
		input := textinput.New()
		input.CharLimit = 128
		input.Width = 40
		if configure != nil {
			configure(index, &input)
		}
		inputs[index] = input
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return form{labels: labels, inputs: inputs}
}

// Update routes a message to the focused input and handles focus
// cycling on tab / shift+tab.
func (f form) Update(message tea.Msg) (form, tea.Cmd) {
	if keyMessage, ok := message.(tea.KeyMsg); ok {
		switch keyMessage.Type {
		case tea.KeyTab, tea.KeyDown:
			f.setFocus((f.focus + 1) % len(f.inputs))
			return f, textinput.Blink
		case tea.KeyShiftTab, tea.KeyUp:
			f.setFocus((f.focus + len(f.inputs) - 1) % len(f.inputs))
			return f, textinput.Blink
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(message)
	return f, cmd
}

func (f *form) setFocus(index int) {
	f.inputs[f.focus].Blur()
	f.focus = index
	f.inputs[f.focus].Focus()
}

// Value returns the trimmed text of the input at index.
func (f form) Value(index int) string {
	return strings.TrimSpace(f.inputs[index].Value())
}

// Reset clears every input and returns focus to the first one.
func (f *form) Reset() {
	for index := range f.inputs {
		f.inputs[index].SetValue("")
		f.inputs[index].Blur()
	}
	f.focus = 0
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

// View renders labels and inputs as aligned rows.
func (f form) View(theme tui.Theme) string {
	labelWidth := 0
	for _, label := range f.labels {
		if len(label) > labelWidth {
			labelWidth = len(label)
		}
	}
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(labelWidth + 2)

	var rows []string
	for index, input := range f.inputs {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(f.labels[index]),
			input.View(),
		))
	}
	return strings.Join(rows, "\n")
}

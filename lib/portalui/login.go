// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/portal/lib/apiclient"
	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/tui"
)

// loginOutcome tells the root model what to do after a login page
// update.
type loginOutcome int

const (
	loginOutcomeNone loginOutcome = iota
	// loginOutcomeRegister switches to the registration form.
	loginOutcomeRegister
	// loginOutcomeSuccess enters the main view.
	loginOutcomeSuccess
)

// loginResultMsg reports the result of an asynchronous sign-in call.
type loginResultMsg struct {
	err error
}

const (
	loginFieldEmail = iota
	loginFieldPassword
)

// loginModel is the sign-in form.
type loginModel struct {
	services Services
	theme    tui.Theme

	form       form
	submitting bool
	errText    string
}

func newLoginModel(services Services, theme tui.Theme) loginModel {
	signInForm := newForm([]string{"Email", "Password"}, func(index int, input *textinput.Model) {
		switch index {
		case loginFieldEmail:
			input.Placeholder = "you@example.com"
		case loginFieldPassword:
			input.EchoMode = textinput.EchoPassword
		}
	})
	return loginModel{services: services, theme: theme, form: signInForm}
}

// Reset clears the form and any error so a fresh login attempt starts
// clean (used after logout and session expiry).
func (model *loginModel) Reset() {
	model.form.Reset()
	model.submitting = false
	model.errText = ""
}

func (model loginModel) Update(message tea.Msg) (loginModel, tea.Cmd, loginOutcome) {
	switch message := message.(type) {
	case loginResultMsg:
		model.submitting = false
		if message.err != nil {
			model.errText = apiclient.ErrorMessage(message.err, "sign-in failed")
			return model, nil, loginOutcomeNone
		}
		return model, nil, loginOutcomeSuccess

	case tea.KeyMsg:
		if model.submitting {
			return model, nil, loginOutcomeNone
		}
		switch message.Type {
		case tea.KeyEnter:
			return model.submit()
		case tea.KeyCtrlR:
			return model, nil, loginOutcomeRegister
		}
	}

	var cmd tea.Cmd
	model.form, cmd = model.form.Update(message)
	return model, cmd, loginOutcomeNone
}

func (model loginModel) submit() (loginModel, tea.Cmd, loginOutcome) {
	email := model.form.Value(loginFieldEmail)
	password := model.form.Value(loginFieldPassword)
	if email == "" || password == "" {
		model.errText = "email and password are required"
		return model, nil, loginOutcomeNone
	}

	model.submitting = true
	model.errText = ""
	services := model.services
	return model, func() tea.Msg {
		err := services.Session.Login(context.Background(), banking.LoginRequest{
			Email:    email,
			Password: password,
		})
		return loginResultMsg{err: err}
	}, loginOutcomeNone
}

// View renders the sign-in panel. The notice argument carries the
// root model's transient message (session expiry), shown above the
// form.
func (model loginModel) View(notice string) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(model.theme.HeaderForeground).
		Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	var builder []string
	builder = append(builder, titleStyle.Render("Ledgerline Portal"), "")
	if notice != "" {
		noticeStyle := lipgloss.NewStyle().Foreground(model.theme.StatusFrozen)
		builder = append(builder, noticeStyle.Render(notice), "")
	}
	builder = append(builder, model.form.View(model.theme), "")

	switch {
	case model.submitting:
		builder = append(builder, helpStyle.Render("signing in…"))
	case model.errText != "":
		errorStyle := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		builder = append(builder, errorStyle.Render(model.errText))
	default:
		builder = append(builder, helpStyle.Render("Enter sign in · C-r register · C-c quit"))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(1, 3)
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, builder...))
}

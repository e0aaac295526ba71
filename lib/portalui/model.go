// Copyright 2026 The Ledgerline Authors
// SPDX-License-Identifier: Apache-2.0

package portalui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledgerline/portal/lib/banking"
	"github.com/ledgerline/portal/lib/session"
	"github.com/ledgerline/portal/lib/tui"
)

// Services bundles everything the TUI needs to talk to the backends.
// The session manager owns authentication state; the domain services
// are stateless wrappers over the shared API client.
type Services struct {
	Session       *session.Manager
	Accounts      *banking.AccountsService
	Transactions  *banking.TransactionsService
	Notifications *banking.NotificationsService
}

// screen identifies which top-level view is active.
type screen int

const (
	// screenLoading shows a spinner while the stored session is
	// restored from disk.
	screenLoading screen = iota
	// screenLogin shows the sign-in form.
	screenLogin
	// screenRegister shows the account creation form.
	screenRegister
	// screenMain shows the tabbed portal once authenticated.
	screenMain
)

// Tab identifies which main-view data page is active.
type Tab int

const (
	TabDashboard Tab = iota
	TabAccounts
	TabTransactions
	TabNotifications
	TabProfile
)

var tabTitles = map[Tab]string{
	TabDashboard:     "Dashboard",
	TabAccounts:      "Accounts",
	TabTransactions:  "Transactions",
	TabNotifications: "Notifications",
	TabProfile:       "Profile",
}

// sessionLoadedMsg reports the result of the initial session restore.
type sessionLoadedMsg struct {
	authenticated bool
}

// sessionEventMsg wraps a session manager event for delivery through
// the bubbletea message loop.
type sessionEventMsg struct {
	event session.Event
}

// Model is the top-level bubbletea model for the portal TUI.
type Model struct {
	services Services
	theme    tui.Theme
	keys     KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	screen    screen
	activeTab Tab

	// notice is a transient status-bar message, set on session
	// teardown ("session expired") and cleared on the next sign-in.
	notice string

	spinner       spinner.Model
	loginPage     loginModel
	registerPage  registerModel
	dashboard     dashboardModel
	accounts      accountsModel
	transactions  transactionsModel
	notifications notificationsModel
	profile       profileModel

	sessionEvents <-chan session.Event
}

// NewModel creates the root model. The session manager's Init runs
// asynchronously from the program's Init command, so construction is
// cheap and the first frame is the loading spinner.
func NewModel(services Services, theme tui.Theme) Model {
	loadingSpinner := spinner.New()
	loadingSpinner.Spinner = spinner.Dot
	loadingSpinner.Style = lipgloss.NewStyle().Foreground(theme.Accent)

	return Model{
		services:      services,
		theme:         theme,
		keys:          DefaultKeyMap,
		screen:        screenLoading,
		spinner:       loadingSpinner,
		loginPage:     newLoginModel(services, theme),
		registerPage:  newRegisterModel(services, theme),
		dashboard:     newDashboardModel(services, theme),
		accounts:      newAccountsModel(services, theme),
		transactions:  newTransactionsModel(services, theme),
		notifications: newNotificationsModel(services, theme),
		profile:       newProfileModel(services, theme),
		sessionEvents: services.Session.Watch(),
	}
}

// Init implements tea.Model. Restores the stored session in the
// background and starts listening for session events.
func (model Model) Init() tea.Cmd {
	restore := func() tea.Msg {
		model.services.Session.Init()
		return sessionLoadedMsg{authenticated: model.services.Session.Authenticated()}
	}
	return tea.Batch(model.spinner.Tick, restore, listenForSessionEvent(model.sessionEvents))
}

// listenForSessionEvent returns a command that blocks until the next
// session event, then delivers it as a sessionEventMsg.
func listenForSessionEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return sessionEventMsg{event: event}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.propagateSize()
		return model, nil

	case tea.KeyMsg:
		// Ctrl+C always quits, regardless of screen or focus.
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}

	case spinner.TickMsg:
		if model.screen == screenLoading {
			var cmd tea.Cmd
			model.spinner, cmd = model.spinner.Update(message)
			return model, cmd
		}
		return model, nil

	case sessionLoadedMsg:
		if model.screen != screenLoading {
			return model, nil
		}
		if message.authenticated {
			return model, model.enterMain()
		}
		model.screen = screenLogin
		return model, nil

	case sessionEventMsg:
		return model.handleSessionEvent(message.event)
	}

	switch model.screen {
	case screenLoading:
		return model, nil
	case screenLogin:
		return model.updateLogin(message)
	case screenRegister:
		return model.updateRegister(message)
	default:
		return model.updateMain(message)
	}
}

// handleSessionEvent applies a session state change. An authenticated
// event while outside the main view enters it; a de-authenticated
// event while inside tears it down and returns to the login form.
// Redundant events (already on the matching screen) are ignored, so
// each transition happens exactly once.
func (model Model) handleSessionEvent(event session.Event) (tea.Model, tea.Cmd) {
	relisten := listenForSessionEvent(model.sessionEvents)

	if event.Authenticated {
		if model.screen == screenMain {
			return model, relisten
		}
		model.notice = ""
		return model, tea.Batch(model.enterMain(), relisten)
	}

	if model.screen != screenMain {
		return model, relisten
	}
	model.screen = screenLogin
	model.notice = "session expired — please sign in again"
	model.loginPage.Reset()
	model.registerPage.Reset()
	return model, relisten
}

// enterMain switches to the main view on the dashboard tab and kicks
// off its initial fetch. Must be assigned to the model's screen state
// by the caller via the returned model in Update.
func (model *Model) enterMain() tea.Cmd {
	model.screen = screenMain
	model.activeTab = TabDashboard
	model.propagateSize()
	return model.dashboard.load()
}

// updateLogin routes messages to the login page and handles the
// transition to the register form and into the main view.
func (model Model) updateLogin(message tea.Msg) (tea.Model, tea.Cmd) {
	page, cmd, result := model.loginPage.Update(message)
	model.loginPage = page

	switch result {
	case loginOutcomeRegister:
		model.screen = screenRegister
		model.registerPage.Reset()
		return model, textinput.Blink
	case loginOutcomeSuccess:
		model.notice = ""
		return model, model.enterMain()
	}
	return model, cmd
}

// updateRegister routes messages to the registration page.
func (model Model) updateRegister(message tea.Msg) (tea.Model, tea.Cmd) {
	page, cmd, result := model.registerPage.Update(message)
	model.registerPage = page

	switch result {
	case registerOutcomeBack:
		model.screen = screenLogin
		model.loginPage.Reset()
		return model, textinput.Blink
	case registerOutcomeSuccess:
		model.notice = ""
		return model, model.enterMain()
	}
	return model, cmd
}

// updateMain routes messages within the authenticated tabbed view.
// Global keys (quit, logout, tab switching) are handled here unless
// the active page is capturing text input; everything else goes to
// the active page only, so a fetch that completes after the user has
// switched tabs is dropped rather than applied.
func (model Model) updateMain(message tea.Msg) (tea.Model, tea.Cmd) {
	if keyMessage, ok := message.(tea.KeyMsg); ok && !model.activePageCapturesInput() {
		switch {
		case key.Matches(keyMessage, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(keyMessage, model.keys.Logout):
			model.services.Session.Logout()
			// The watch event completes the screen transition.
			return model, nil

		case key.Matches(keyMessage, model.keys.TabDashboard):
			return model, model.switchTab(TabDashboard)
		case key.Matches(keyMessage, model.keys.TabAccounts):
			return model, model.switchTab(TabAccounts)
		case key.Matches(keyMessage, model.keys.TabTransactions):
			return model, model.switchTab(TabTransactions)
		case key.Matches(keyMessage, model.keys.TabNotifications):
			return model, model.switchTab(TabNotifications)
		case key.Matches(keyMessage, model.keys.TabProfile):
			return model, model.switchTab(TabProfile)
		}
	}

	return model.updateActivePage(message)
}

// activePageCapturesInput reports whether the active page is in a
// text-entry mode (form or filter), in which case printable keys
// must reach the page instead of triggering global bindings.
func (model Model) activePageCapturesInput() bool {
	switch model.activeTab {
	case TabAccounts:
		return model.accounts.capturesInput()
	case TabTransactions:
		return model.transactions.capturesInput()
	case TabNotifications:
		return model.notifications.capturesInput()
	case TabProfile:
		return model.profile.capturesInput()
	}
	return false
}

// switchTab activates a tab and starts its data fetch. Switching to
// the already-active tab refetches.
func (model *Model) switchTab(tab Tab) tea.Cmd {
	model.activeTab = tab
	model.propagateSize()
	switch tab {
	case TabDashboard:
		return model.dashboard.load()
	case TabAccounts:
		return model.accounts.load()
	case TabTransactions:
		return model.transactions.load()
	case TabNotifications:
		return model.notifications.load()
	case TabProfile:
		model.profile.show()
		return nil
	}
	return nil
}

func (model Model) updateActivePage(message tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch model.activeTab {
	case TabDashboard:
		model.dashboard, cmd = model.dashboard.Update(message)
	case TabAccounts:
		model.accounts, cmd = model.accounts.Update(message)
	case TabTransactions:
		model.transactions, cmd = model.transactions.Update(message)
	case TabNotifications:
		model.notifications, cmd = model.notifications.Update(message)
	case TabProfile:
		model.profile, cmd = model.profile.Update(message)
	}
	return model, cmd
}

// propagateSize pushes the content area dimensions into the pages.
// The main view reserves one row for the tab bar and one for the
// status bar.
func (model *Model) propagateSize() {
	contentHeight := model.height - 2
	if contentHeight < 0 {
		contentHeight = 0
	}
	model.dashboard.setSize(model.width, contentHeight)
	model.accounts.setSize(model.width, contentHeight)
	model.transactions.setSize(model.width, contentHeight)
	model.notifications.setSize(model.width, contentHeight)
	model.profile.setSize(model.width, contentHeight)
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}

	switch model.screen {
	case screenLoading:
		return model.centered(model.spinner.View() + " restoring session")
	case screenLogin:
		return model.centered(model.loginPage.View(model.notice))
	case screenRegister:
		return model.centered(model.registerPage.View())
	}

	var builder strings.Builder
	builder.WriteString(model.renderTabBar())
	builder.WriteString("\n")

	switch model.activeTab {
	case TabDashboard:
		builder.WriteString(model.dashboard.View())
	case TabAccounts:
		builder.WriteString(model.accounts.View())
	case TabTransactions:
		builder.WriteString(model.transactions.View())
	case TabNotifications:
		builder.WriteString(model.notifications.View())
	case TabProfile:
		builder.WriteString(model.profile.View())
	}

	builder.WriteString("\n")
	builder.WriteString(model.renderStatusBar())
	return builder.String()
}

// centered places content in the middle of the terminal.
func (model Model) centered(content string) string {
	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, content)
}

func (model Model) renderTabBar() string {
	activeStyle := lipgloss.NewStyle().
		Foreground(model.theme.SelectedForeground).
		Background(model.theme.SelectedBackground).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Padding(0, 1)

	var parts []string
	for tab := TabDashboard; tab <= TabProfile; tab++ {
		label := fmt.Sprintf("%d %s", int(tab)+1, tabTitles[tab])
		if tab == model.activeTab {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, inactiveStyle.Render(label))
		}
	}
	bar := strings.Join(parts, "")

	// Signed-in identity on the right edge.
	identity := ""
	if user := model.services.Session.User(); user != nil {
		identity = lipgloss.NewStyle().
			Foreground(model.theme.FaintText).
			Render(user.FullName() + " ")
	}
	gap := model.width - lipgloss.Width(bar) - lipgloss.Width(identity)
	if gap < 1 {
		return bar
	}
	return bar + strings.Repeat(" ", gap) + identity
}

func (model Model) renderStatusBar() string {
	helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
	help := helpStyle.Render("1-5 tabs · r refresh · C-l log out · q quit")
	if model.notice == "" {
		return help
	}
	noticeStyle := lipgloss.NewStyle().Foreground(model.theme.StatusFrozen)
	return help + "  " + noticeStyle.Render(model.notice)
}

// formatAmount renders a monetary value with its currency code.
func formatAmount(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// formatTime renders a timestamp in the compact local form used by
// list rows.
func formatTime(when time.Time) string {
	if when.IsZero() {
		return "-"
	}
	return when.Local().Format("2006-01-02 15:04")
}

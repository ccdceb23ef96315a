package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sponsorhub/sponsorhub/internal/api"
	"github.com/sponsorhub/sponsorhub/internal/events"
	"github.com/sponsorhub/sponsorhub/internal/session"
	"github.com/sponsorhub/sponsorhub/internal/submit"
)

// Screen represents the current active screen in the application
type Screen string

const (
	ScreenDashboard Screen = "dashboard"
	ScreenWizard    Screen = "wizard"
	ScreenSuccess   Screen = "success"
	ScreenFailure   Screen = "failure"
)

// Messages for screen transitions
type screenTransitionMsg struct {
	screen Screen
	data   interface{}
}

type goBackMsg struct{}

// successNavigateMsg fires when the success notice has been on screen long
// enough and the app should return to the dashboard.
type successNavigateMsg struct{}

// toastMsg carries a backend notification into the UI.
type toastMsg struct {
	event events.Event
}

// toastExpireMsg clears the toast after its display window.
type toastExpireMsg struct {
	seq int
}

// successKeyMap defines key bindings for the success screen
type successKeyMap struct {
	Continue key.Binding
	Quit     key.Binding
}

func (k successKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Continue, k.Quit}
}

func (k successKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Continue, k.Quit}}
}

// failureKeyMap defines key bindings for the failure screen
type failureKeyMap struct {
	Retry key.Binding
	Back  key.Binding
	Quit  key.Binding
}

func (k failureKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Retry, k.Back, k.Quit}
}

func (k failureKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Retry, k.Back, k.Quit}}
}

// AppModel is the top-level coordinator model that manages screen transitions
type AppModel struct {
	// Current screen state
	CurrentScreen  Screen
	PreviousScreen Screen

	// Screen models
	DashboardModel DashboardModel
	WizardModel    WizardModel

	// Shared application state
	Client      *api.Client
	Session     *session.Session
	Notifier    *events.Subscriber
	LastError   error
	LastCreated string // description of the last successfully created entity

	// Toast state
	Toast    string
	toastSeq int

	// UI state
	Width  int
	Height int

	// Help
	Help        help.Model
	SuccessKeys successKeyMap
	FailureKeys failureKeyMap
}

// NewAppModel creates a new application model starting at the dashboard.
// The notifier may be nil when the notification stream is unavailable; the
// app then simply never shows toasts.
func NewAppModel(client *api.Client, sess *session.Session, notifier *events.Subscriber) AppModel {
	h := help.New()

	successKeys := successKeyMap{
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continua"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "esci"),
		),
	}

	failureKeys := failureKeyMap{
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "riprova"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "indietro"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "esci"),
		),
	}

	model := AppModel{
		CurrentScreen: ScreenDashboard,
		Client:        client,
		Session:       sess,
		Notifier:      notifier,
		Help:          h,
		SuccessKeys:   successKeys,
		FailureKeys:   failureKeys,
	}
	model.DashboardModel = NewDashboardModel(client, sess)

	return model
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.DashboardModel.Init()}
	if m.Notifier != nil {
		cmds = append(cmds, waitForEvent(m.Notifier.Events()))
	}
	return tea.Batch(cmds...)
}

// waitForEvent blocks on the notification channel and converts the next
// event into a toastMsg. Re-issued after every toast.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return toastMsg{event: ev}
	}
}

// Update handles all messages and routes them to the appropriate screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Propagate to all screens
		m.DashboardModel.Width = msg.Width
		m.DashboardModel.Height = msg.Height
		m.WizardModel.Width = msg.Width
		m.WizardModel.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case toastMsg:
		m.Toast = msg.event.Message
		m.toastSeq++
		seq := m.toastSeq
		expire := tea.Tick(4*time.Second, func(time.Time) tea.Msg {
			return toastExpireMsg{seq: seq}
		})
		if m.Notifier != nil {
			return m, tea.Batch(expire, waitForEvent(m.Notifier.Events()))
		}
		return m, expire

	case toastExpireMsg:
		// Only clear if no newer toast replaced this one
		if msg.seq == m.toastSeq {
			m.Toast = ""
		}
		return m, nil

	case screenTransitionMsg:
		return m.transitionTo(msg.screen, msg.data)

	case goBackMsg:
		return m.goBack()

	case successNavigateMsg:
		// The success notice timed out; reload the dashboard
		return m.transitionTo(ScreenDashboard, nil)
	}

	// Route to current screen
	return m.updateCurrentScreen(msg)
}

// updateCurrentScreen routes updates to the currently active screen
func (m AppModel) updateCurrentScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.CurrentScreen {
	case ScreenDashboard:
		updated, c := m.DashboardModel.Update(msg)
		m.DashboardModel = updated.(DashboardModel)
		cmd = c

		// Check if the dashboard requested a wizard
		if req := m.DashboardModel.TakeWizardRequest(); req != nil {
			return m.transitionTo(ScreenWizard, req)
		}

		// Quit from the dashboard
		if m.DashboardModel.QuitRequested {
			return m, tea.Quit
		}

	case ScreenWizard:
		updated, c := m.WizardModel.Update(msg)
		m.WizardModel = updated.(WizardModel)
		cmd = c

		switch m.WizardModel.Outcome() {
		case WizardSucceeded:
			m.LastCreated = m.WizardModel.ResultSummary()
			m.PreviousScreen = m.CurrentScreen
			m.CurrentScreen = ScreenSuccess
			// Auto-navigate back after the success notice delay
			return m, tea.Tick(submit.SuccessNavigateDelay, func(time.Time) tea.Msg {
				return successNavigateMsg{}
			})
		case WizardCancelled:
			return m.transitionTo(ScreenDashboard, nil)
		}

	case ScreenSuccess:
		return m.handleSuccessScreen(msg)

	case ScreenFailure:
		return m.handleFailureScreen(msg)
	}

	return m, cmd
}

// handleSuccessScreen handles user input on the success screen
func (m AppModel) handleSuccessScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m.transitionTo(ScreenDashboard, nil)
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleFailureScreen handles user input on the failure screen
func (m AppModel) handleFailureScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "r", "esc":
			return m.transitionTo(ScreenDashboard, nil)
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// transitionTo transitions to a new screen
func (m AppModel) transitionTo(screen Screen, data interface{}) (tea.Model, tea.Cmd) {
	m.PreviousScreen = m.CurrentScreen
	m.CurrentScreen = screen

	var cmd tea.Cmd

	switch screen {
	case ScreenDashboard:
		m.DashboardModel = NewDashboardModel(m.Client, m.Session)
		m.DashboardModel.Width = m.Width
		m.DashboardModel.Height = m.Height
		cmd = m.DashboardModel.Init()

	case ScreenWizard:
		if req, ok := data.(*WizardRequest); ok {
			m.WizardModel = NewWizardModel(m.Client, req)
			m.WizardModel.Width = m.Width
			m.WizardModel.Height = m.Height
			cmd = m.WizardModel.Init()
		}

	case ScreenSuccess, ScreenFailure:
		cmd = nil
	}

	return m, cmd
}

// goBack returns to the previous screen
func (m AppModel) goBack() (tea.Model, tea.Cmd) {
	switch m.CurrentScreen {
	case ScreenDashboard:
		// Can't go back from the dashboard - quit instead
		return m, tea.Quit
	default:
		return m.transitionTo(ScreenDashboard, nil)
	}
}

// View renders the current screen
// Each screen handles its own container using RenderApplicationContainer()
func (m AppModel) View() string {
	switch m.CurrentScreen {
	case ScreenDashboard:
		return m.withToast(m.DashboardModel.View())
	case ScreenWizard:
		return m.WizardModel.View()
	case ScreenSuccess:
		return m.renderSuccessScreen()
	case ScreenFailure:
		return m.renderFailureScreen()
	default:
		return "Unknown screen"
	}
}

// withToast overlays the current toast line, if any, on a rendered screen.
// The toast replaces the first line so the layout never jumps.
func (m AppModel) withToast(view string) string {
	if m.Toast == "" {
		return view
	}
	lines := strings.SplitN(view, "\n", 2)
	toast := ToastStyle.Render(" " + m.Toast + " ")
	if len(lines) == 2 {
		return toast + "\n" + lines[1]
	}
	return toast + "\n" + view
}

// renderSuccessScreen renders the success result screen
func (m AppModel) renderSuccessScreen() string {
	var b strings.Builder

	b.WriteString(RenderTitle("✓ Operazione completata"))
	b.WriteString("\n\n")

	if m.LastCreated != "" {
		b.WriteString(SuccessBoxStyle.Render(m.LastCreated))
		b.WriteString("\n\n")
	}

	b.WriteString(SubtitleStyle.Render("Ritorno alla dashboard..."))
	b.WriteString("\n")

	helpText := m.Help.View(m.SuccessKeys)
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}

// renderFailureScreen renders the failure result screen
func (m AppModel) renderFailureScreen() string {
	var b strings.Builder

	b.WriteString(RenderTitle("✗ Operazione non riuscita"))
	b.WriteString("\n\n")

	if m.LastError != nil {
		b.WriteString(ErrorBoxStyle.Render(fmt.Sprintf("%v", m.LastError)))
		b.WriteString("\n\n")
	}

	b.WriteString(MenuItemStyle.Render("  r   - Torna alla dashboard e riprova"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  q   - Esci"))
	b.WriteString("\n")

	helpText := m.Help.View(m.FailureKeys)
	return RenderApplicationContainer(b.String(), helpText, m.Width, m.Height)
}

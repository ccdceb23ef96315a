package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sponsorhub/sponsorhub/internal/api"
	"github.com/sponsorhub/sponsorhub/internal/loader"
	"github.com/sponsorhub/sponsorhub/internal/session"
)

// dashboardLoadTimeout bounds the initial parallel fetch.
const dashboardLoadTimeout = 15 * time.Second

// dashboardLoadedMsg carries the settled result of the parallel dashboard
// fetch back into the update loop.
type dashboardLoadedMsg struct {
	result loader.Result
}

// dashboardKeyMap defines key bindings for the dashboard
type dashboardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NewContract key.Binding
	NewTask     key.Binding
	NewClub     key.Binding
	Reload      key.Binding
	Quit        key.Binding
}

func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NewContract, k.NewTask, k.NewClub, k.Reload, k.Quit}
}

func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NewContract, k.NewTask, k.NewClub},
		{k.Reload, k.Quit},
	}
}

// DashboardModel is the landing screen: aggregate counters plus the contract
// list, loaded in one parallel batch on mount.
type DashboardModel struct {
	Client  *api.Client
	Session *session.Session

	Width  int
	Height int

	// Load state
	Loading bool
	LoadErr error
	Spinner spinner.Model

	// Loaded data
	Stats     *api.DashboardStats
	Contracts []api.Contract
	Clubs     []api.Club
	Sponsors  []api.Sponsor

	// Selection
	Cursor int

	// Outgoing intents, consumed by the app coordinator
	wizardReq     *WizardRequest
	QuitRequested bool

	Help help.Model
	Keys dashboardKeyMap
}

// NewDashboardModel creates a dashboard for the given authenticated session.
func NewDashboardModel(client *api.Client, sess *session.Session) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := dashboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "su"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "giù"),
		),
		NewContract: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "nuovo contratto"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "nuovo task"),
		),
		NewClub: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "nuovo club"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "ricarica"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "esci"),
		),
	}

	return DashboardModel{
		Client:  client,
		Session: sess,
		Loading: true,
		Spinner: s,
		Help:    help.New(),
		Keys:    keys,
	}
}

// Init starts the spinner and kicks off the parallel fetch.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.loadCmd())
}

// loadCmd fetches everything the dashboard needs in one settled batch. Only
// the contract list is primary; counters and the party lists degrade to empty
// values when their endpoints fail.
func (m DashboardModel) loadCmd() tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dashboardLoadTimeout)
		defer cancel()

		result := loader.Load(ctx,
			loader.Request{
				Name:    "contracts",
				Primary: true,
				Fetch: func(ctx context.Context) (any, error) {
					return client.ListContracts(ctx)
				},
				Fallback: []api.Contract(nil),
			},
			loader.Request{
				Name: "stats",
				Fetch: func(ctx context.Context) (any, error) {
					return client.GetStats(ctx)
				},
				Fallback: &api.DashboardStats{},
			},
			loader.Request{
				Name: "clubs",
				Fetch: func(ctx context.Context) (any, error) {
					return client.ListClubs(ctx)
				},
				Fallback: []api.Club(nil),
			},
			loader.Request{
				Name: "sponsors",
				Fetch: func(ctx context.Context) (any, error) {
					return client.ListSponsors(ctx)
				},
				Fallback: []api.Sponsor(nil),
			},
		)
		return dashboardLoadedMsg{result: result}
	}
}

// TakeWizardRequest returns the pending wizard request, if any, and clears it.
func (m *DashboardModel) TakeWizardRequest() *WizardRequest {
	req := m.wizardReq
	m.wizardReq = nil
	return req
}

// Update handles messages for the dashboard
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.Spinner, cmd = m.Spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case dashboardLoadedMsg:
		m.Loading = false
		m.LoadErr = msg.result.Err
		m.Contracts, _ = msg.result.Get("contracts").([]api.Contract)
		m.Stats, _ = msg.result.Get("stats").(*api.DashboardStats)
		m.Clubs, _ = msg.result.Get("clubs").([]api.Club)
		m.Sponsors, _ = msg.result.Get("sponsors").([]api.Sponsor)
		if m.Cursor >= len(m.Contracts) {
			m.Cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m DashboardModel) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.QuitRequested = true
		return m, nil

	case key.Matches(msg, m.Keys.Reload):
		m.Loading = true
		m.LoadErr = nil
		return m, tea.Batch(m.Spinner.Tick, m.loadCmd())

	case key.Matches(msg, m.Keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil

	case key.Matches(msg, m.Keys.Down):
		if m.Cursor < len(m.Contracts)-1 {
			m.Cursor++
		}
		return m, nil

	case key.Matches(msg, m.Keys.NewContract):
		if m.Loading {
			return m, nil
		}
		m.wizardReq = &WizardRequest{
			Kind:     WizardContract,
			Clubs:    m.Clubs,
			Sponsors: m.Sponsors,
		}
		return m, nil

	case key.Matches(msg, m.Keys.NewTask):
		if m.Loading || len(m.Contracts) == 0 {
			return m, nil
		}
		selected := m.Contracts[m.Cursor]
		m.wizardReq = &WizardRequest{
			Kind:          WizardChecklist,
			ContractID:    selected.ID,
			ContractTitle: selected.Titolo,
		}
		return m, nil

	case key.Matches(msg, m.Keys.NewClub):
		if m.Loading {
			return m, nil
		}
		m.wizardReq = &WizardRequest{Kind: WizardClub}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard
func (m DashboardModel) View() string {
	var b strings.Builder

	title := "Dashboard"
	if m.Session != nil {
		title = fmt.Sprintf("Dashboard · %s", m.Session.User.Nome)
	}
	b.WriteString(RenderTitle(title))
	b.WriteString("\n\n")

	if m.Loading {
		b.WriteString(fmt.Sprintf("%s Caricamento in corso...", m.Spinner.View()))
		b.WriteString("\n")
		return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
	}

	if m.LoadErr != nil {
		b.WriteString(ErrorBoxStyle.Render(api.ShortMessage(m.LoadErr)))
		b.WriteString("\n\n")
		b.WriteString(SubtitleStyle.Render("Premi r per riprovare."))
		b.WriteString("\n")
		return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
	}

	b.WriteString(m.renderStats())
	b.WriteString("\n\n")
	b.WriteString(m.renderContracts())

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}

// renderStats renders the aggregate counters box
func (m DashboardModel) renderStats() string {
	stats := m.Stats
	if stats == nil {
		stats = &api.DashboardStats{}
	}
	line := fmt.Sprintf(
		"Club: %d   Sponsor: %d   Contratti attivi: %d   Valore totale: %s",
		stats.ClubCount,
		stats.SponsorCount,
		stats.ActiveContracts,
		FormatAmount(stats.TotalValueCents),
	)
	return InfoBoxStyle.Render(line)
}

// renderContracts renders the contract list with the current selection
func (m DashboardModel) renderContracts() string {
	var b strings.Builder

	b.WriteString(SubtitleStyle.Render("Contratti"))
	b.WriteString("\n")

	if len(m.Contracts) == 0 {
		b.WriteString(MenuItemStyle.Render("Nessun contratto presente. Premi n per crearne uno."))
		b.WriteString("\n")
		return b.String()
	}

	for i, contract := range m.Contracts {
		line := fmt.Sprintf("%s  %-30s %12s",
			FormatStato(contract.Stato),
			truncate(contract.Titolo, 30),
			FormatAmount(contract.TotalCents),
		)
		if i == m.Cursor {
			b.WriteString(SelectedListItemStyle.Render("> " + line))
		} else {
			b.WriteString(ListItemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}

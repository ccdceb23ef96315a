package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sponsorhub/sponsorhub/internal/api"
	"github.com/sponsorhub/sponsorhub/internal/form"
	"github.com/sponsorhub/sponsorhub/internal/submit"
)

// submitTimeout bounds the create call dispatched from the confirm prompt.
const submitTimeout = 30 * time.Second

// WizardKind selects which form the wizard screen drives.
type WizardKind int

const (
	WizardContract WizardKind = iota
	WizardChecklist
	WizardClub
)

// WizardOutcome is how the wizard screen ended, polled by the coordinator.
type WizardOutcome int

const (
	WizardRunning WizardOutcome = iota
	WizardSucceeded
	WizardCancelled
)

// WizardRequest is the dashboard's intent to open a wizard, with the context
// the form needs (party lists for contracts, the parent for checklist tasks).
type WizardRequest struct {
	Kind WizardKind

	// Contract wizard context
	Clubs    []api.Club
	Sponsors []api.Sponsor

	// Checklist wizard context
	ContractID    int64
	ContractTitle string
}

// fieldSpec binds one draft field to its on-screen label and placeholder.
type fieldSpec struct {
	Key         string
	Label       string
	Placeholder string
}

// contractStepFields lists the visible inputs per contract wizard step, in
// the same order as form.ContractSteps.
var contractStepFields = [][]fieldSpec{
	{
		{form.ContractFieldTitolo, "Titolo", "Sponsorizzazione stagione 2026/27"},
		{form.ContractFieldClubID, "Club (ID)", "1"},
		{form.ContractFieldSponsorID, "Sponsor (ID)", "1"},
		{form.ContractFieldDataInizio, "Data inizio", "2026-09-01"},
		{form.ContractFieldDataFine, "Data fine (opzionale)", "2027-06-30"},
	},
	{
		{form.ContractFieldDurataMesi, "Durata (mesi)", "12"},
		{form.ContractFieldPrezzoBase, "Prezzo base (EUR)", "1000"},
		{form.ContractFieldAliquotaIVA, "Aliquota IVA (%)", form.DefaultVATRate},
		{form.ContractFieldAddonLED, "Add-on LED (EUR, opzionale)", "200"},
		{form.ContractFieldAddonMaglia, "Add-on maglia (EUR, opzionale)", ""},
		{form.ContractFieldAddonHosp, "Add-on hospitality (EUR, opzionale)", ""},
	},
	{
		{form.ContractFieldContrattoURL, "URL contratto firmato (opzionale)", ""},
		{form.ContractFieldNote, "Note (opzionale)", ""},
	},
}

// checklistStepFields lists the inputs of the single checklist task step.
var checklistStepFields = [][]fieldSpec{
	{
		{form.ChecklistFieldTitolo, "Titolo", "Consegna loghi sponsor"},
		{form.ChecklistFieldDescrizione, "Descrizione (opzionale)", ""},
		{form.ChecklistFieldAssegnatoA, "Assegnato a (club/sponsor)", "club"},
		{form.ChecklistFieldScadenza, "Scadenza (opzionale)", "2026-10-15"},
	},
}

// clubStepFields lists the visible inputs per club wizard step, in the same
// order as form.ClubSteps.
var clubStepFields = [][]fieldSpec{
	{
		{form.ClubFieldNome, "Nome", "ASD Livorno Nord"},
		{form.ClubFieldCitta, "Città", "Livorno"},
		{form.ClubFieldSport, "Sport (calcio/basket/volley/rugby/altro)", "calcio"},
	},
	{
		{form.ClubFieldEmail, "Email di contatto", "segreteria@club.it"},
		{form.ClubFieldTelefono, "Telefono (opzionale)", ""},
		{form.ClubFieldReferente, "Referente (opzionale)", ""},
	},
	{
		{form.ClubFieldLogoURL, "URL logo (opzionale)", ""},
		{form.ClubFieldNote, "Note (opzionale)", ""},
	},
}

// wizardKeyMap defines key bindings for the wizard screen
type wizardKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Continue  key.Binding
	PrevStep  key.Binding
	Cancel    key.Binding
}

func (k wizardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Continue, k.PrevStep, k.Cancel}
}

func (k wizardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{k.Continue, k.PrevStep, k.Cancel},
	}
}

// submitDoneMsg signals that the dispatched mutation settled.
type submitDoneMsg struct{}

// WizardModel drives a step-gated form with a confirm prompt before the
// create call. The form semantics live in internal/form and internal/submit;
// this model only renders them and routes keys.
type WizardModel struct {
	Client *api.Client

	Width  int
	Height int

	kind       WizardKind
	request    *WizardRequest
	wizard     *form.Wizard
	gate       *submit.Gate
	stepFields [][]fieldSpec

	inputs []textinput.Model
	focus  int

	// Summary validation errors shown after a rejected submit request.
	summaryErrs form.FieldErrors

	Spinner spinner.Model
	Help    help.Model
	Keys    wizardKeyMap

	outcome WizardOutcome
	summary string
}

// NewWizardModel builds the wizard screen for a dashboard request.
func NewWizardModel(client *api.Client, req *WizardRequest) WizardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := wizardKeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "campo successivo"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "campo precedente"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continua"),
		),
		PrevStep: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "passo precedente"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "annulla"),
		),
	}

	m := WizardModel{
		Client:  client,
		kind:    req.Kind,
		request: req,
		Spinner: s,
		Help:    help.New(),
		Keys:    keys,
	}

	switch req.Kind {
	case WizardChecklist:
		m.wizard = form.NewWizard(form.ChecklistSteps(), form.NewChecklistDraft())
		m.stepFields = checklistStepFields
	case WizardClub:
		m.wizard = form.NewWizard(form.ClubSteps(), form.NewClubDraft())
		m.stepFields = clubStepFields
	default:
		m.wizard = form.NewWizard(form.ContractSteps(), form.NewContractDraft())
		m.stepFields = contractStepFields
	}

	m.gate = submit.NewGate(m.submitter())
	m.rebuildInputs()

	return m
}

// submitter builds the gate's mutation for this wizard kind. The payload is
// read from the draft at dispatch time so retries pick up any edits.
func (m *WizardModel) submitter() submit.Submitter {
	client := m.Client
	req := m.request
	kind := m.kind
	wiz := m.wizard

	return func(ctx context.Context, idempotencyKey string) error {
		opt := api.WithIdempotencyKey(idempotencyKey)
		switch kind {
		case WizardChecklist:
			_, err := client.CreateChecklistTask(ctx, req.ContractID, form.ChecklistPayload(wiz.Draft()), opt)
			return err
		case WizardClub:
			_, err := client.CreateClub(ctx, form.ClubPayload(wiz.Draft()), opt)
			return err
		default:
			_, err := client.CreateContract(ctx, form.ContractPayload(wiz.Draft()), opt)
			return err
		}
	}
}

// rebuildInputs recreates the text inputs for the current step from the
// draft, focusing the first field.
func (m *WizardModel) rebuildInputs() {
	fields := m.stepFields[m.wizard.Current()]
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Placeholder
		in.SetValue(m.wizard.Field(f.Key))
		in.CharLimit = 200
		in.Width = 48
		m.inputs[i] = in
	}
	m.focus = 0
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
}

// setFocus moves input focus, wrapping at both ends.
func (m *WizardModel) setFocus(idx int) {
	if len(m.inputs) == 0 {
		return
	}
	if idx < 0 {
		idx = len(m.inputs) - 1
	}
	if idx >= len(m.inputs) {
		idx = 0
	}
	m.inputs[m.focus].Blur()
	m.focus = idx
	m.inputs[m.focus].Focus()
}

// Outcome reports how the wizard ended, WizardRunning while it is still up.
func (m WizardModel) Outcome() WizardOutcome { return m.outcome }

// ResultSummary describes the created entity for the success screen.
func (m WizardModel) ResultSummary() string { return m.summary }

// Init starts the spinner ticker.
func (m WizardModel) Init() tea.Cmd {
	return m.Spinner.Tick
}

// confirmCmd dispatches the mutation through the gate in the background.
// The gate itself guarantees only one dispatch runs at a time.
func (m WizardModel) confirmCmd() tea.Cmd {
	gate := m.gate
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		gate.Confirm(ctx)
		return submitDoneMsg{}
	}
}

// Update handles messages for the wizard screen
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case submitDoneMsg:
		if m.gate.State() == submit.StateSucceeded {
			m.summary = m.successSummary()
			m.outcome = WizardSucceeded
		}
		// On failure the gate holds the error and the retry prompt renders.
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m WizardModel) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.gate.State() {
	case submit.StateSubmitting:
		// The mutation is in flight; nothing to do but wait.
		return m, nil

	case submit.StateConfirming:
		switch msg.String() {
		case "enter", "s", "S":
			return m, m.confirmCmd()
		case "esc", "n", "N":
			m.gate.Cancel()
			return m, nil
		}
		return m, nil

	case submit.StateFailed:
		switch msg.String() {
		case "r", "R", "enter":
			return m, m.confirmCmd()
		case "esc":
			m.gate.Cancel()
			return m, nil
		}
		return m, nil
	}

	// Editing state
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		m.outcome = WizardCancelled
		return m, nil

	case key.Matches(msg, m.Keys.PrevStep):
		if m.wizard.Current() > 0 {
			m.syncDraft()
			m.wizard.Prev()
			m.rebuildInputs()
		}
		return m, nil

	case key.Matches(msg, m.Keys.NextField):
		m.setFocus(m.focus + 1)
		return m, nil

	case key.Matches(msg, m.Keys.PrevField):
		m.setFocus(m.focus - 1)
		return m, nil

	case key.Matches(msg, m.Keys.Continue):
		m.syncDraft()
		m.summaryErrs = nil
		if m.wizard.OnLastStep() {
			if errs, ok := m.gate.RequestSubmit(m.wizard.ValidateAll); !ok {
				m.summaryErrs = errs
			}
			return m, nil
		}
		if m.wizard.Next() {
			m.rebuildInputs()
		}
		return m, nil
	}

	// Route typing to the focused input, mirrored into the draft so the
	// field's error clears as the user edits.
	var cmd tea.Cmd
	if len(m.inputs) > 0 {
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		field := m.stepFields[m.wizard.Current()][m.focus]
		m.wizard.SetField(field.Key, m.inputs[m.focus].Value())
	}
	return m, cmd
}

// syncDraft copies every visible input back into the draft.
func (m *WizardModel) syncDraft() {
	fields := m.stepFields[m.wizard.Current()]
	for i, f := range fields {
		m.wizard.SetField(f.Key, m.inputs[i].Value())
	}
}

// successSummary describes what was just created.
func (m WizardModel) successSummary() string {
	draft := m.wizard.Draft()
	switch m.kind {
	case WizardChecklist:
		return fmt.Sprintf("Task %q aggiunto al contratto %q.",
			strings.TrimSpace(draft[form.ChecklistFieldTitolo]), m.request.ContractTitle)
	case WizardClub:
		return fmt.Sprintf("Club %q registrato.",
			strings.TrimSpace(draft[form.ClubFieldNome]))
	default:
		totals := form.ContractTotals(draft)
		return fmt.Sprintf("Contratto %q creato. Totale: %s.",
			strings.TrimSpace(draft[form.ContractFieldTitolo]), FormatAmount(totals.TotalCents))
	}
}

// View renders the wizard screen
func (m WizardModel) View() string {
	base := m.renderForm()

	switch m.gate.State() {
	case submit.StateConfirming:
		return RenderModal(base, m.renderConfirmModal(), m.Width, m.Height)
	case submit.StateSubmitting:
		return RenderModal(base, m.renderSubmittingModal(), m.Width, m.Height)
	case submit.StateFailed:
		return RenderModal(base, m.renderFailureModal(), m.Width, m.Height)
	}

	return base
}

func (m WizardModel) title() string {
	switch m.kind {
	case WizardChecklist:
		return fmt.Sprintf("Nuovo task · %s", m.request.ContractTitle)
	case WizardClub:
		return "Nuovo club"
	default:
		return "Nuovo contratto"
	}
}

func (m WizardModel) renderForm() string {
	var b strings.Builder

	b.WriteString(RenderTitle(m.title()))
	b.WriteString("\n")

	titles := make([]string, m.wizard.StepCount())
	for i := 0; i < m.wizard.StepCount(); i++ {
		titles[i] = m.stepTitle(i)
	}
	b.WriteString(StepIndicator(titles, m.wizard.Current()))
	b.WriteString("\n\n")

	fields := m.stepFields[m.wizard.Current()]
	errs := m.wizard.Errors()
	for i, f := range fields {
		label := f.Label
		if i == m.focus {
			b.WriteString(FocusedInputStyle.Render(label))
		} else {
			b.WriteString(BlurredInputStyle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := errs[f.Key]; ok {
			b.WriteString(FieldErrorStyle.Render("✗ " + msg))
			b.WriteString("\n")
		}
	}

	if m.kind == WizardContract && m.wizard.Current() == 0 {
		b.WriteString("\n")
		b.WriteString(m.renderParties())
	}

	if m.kind == WizardContract && m.wizard.Current() == 1 {
		b.WriteString("\n")
		b.WriteString(m.renderTotals())
	}

	if len(m.summaryErrs) > 0 {
		b.WriteString("\n")
		b.WriteString(ErrorBoxStyle.Render(m.renderSummaryErrors()))
		b.WriteString("\n")
	}

	return RenderApplicationContainer(b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}

// stepTitle returns the display title of step i.
func (m WizardModel) stepTitle(i int) string {
	var steps []form.Step
	switch m.kind {
	case WizardChecklist:
		steps = form.ChecklistSteps()
	case WizardClub:
		steps = form.ClubSteps()
	default:
		steps = form.ContractSteps()
	}
	return steps[i].Title
}

// renderParties shows the available clubs and sponsors with their IDs so the
// user can fill the ID fields.
func (m WizardModel) renderParties() string {
	var b strings.Builder

	b.WriteString("Club disponibili:\n")
	if len(m.request.Clubs) == 0 {
		b.WriteString("  (nessuno)\n")
	}
	for _, c := range m.request.Clubs {
		b.WriteString(fmt.Sprintf("  %d · %s (%s)\n", c.ID, c.Nome, c.Citta))
	}

	b.WriteString("Sponsor disponibili:\n")
	if len(m.request.Sponsors) == 0 {
		b.WriteString("  (nessuno)\n")
	}
	for _, s := range m.request.Sponsors {
		b.WriteString(fmt.Sprintf("  %d · %s\n", s.ID, s.Nome))
	}

	return InfoBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderTotals shows the live pricing preview, recomputed on every keystroke.
func (m WizardModel) renderTotals() string {
	totals := form.ContractTotals(m.wizard.Draft())
	content := fmt.Sprintf(
		"Imponibile: %s\nIVA:        %s\nTotale:     %s",
		FormatAmount(totals.SubtotalCents),
		FormatAmount(totals.TaxCents),
		FormatAmount(totals.TotalCents),
	)
	return TotalsBoxStyle.Render(content)
}

func (m WizardModel) renderSummaryErrors() string {
	var b strings.Builder
	b.WriteString("Correggi i seguenti campi:")
	for _, f := range m.allFields() {
		if msg, ok := m.summaryErrs[f.Key]; ok {
			b.WriteString("\n  ✗ " + msg)
		}
	}
	return b.String()
}

// allFields flattens the step field specs in form order.
func (m WizardModel) allFields() []fieldSpec {
	var out []fieldSpec
	for _, step := range m.stepFields {
		out = append(out, step...)
	}
	return out
}

func (m WizardModel) renderConfirmModal() string {
	var b strings.Builder
	b.WriteString(RenderTitle("Confermi l'invio?"))
	b.WriteString("\n\n")
	if m.kind == WizardContract {
		totals := form.ContractTotals(m.wizard.Draft())
		b.WriteString(fmt.Sprintf("Totale contratto: %s\n\n", FormatAmount(totals.TotalCents)))
	}
	b.WriteString(MenuItemStyle.Render("enter/s - conferma    esc/n - annulla"))
	return b.String()
}

func (m WizardModel) renderSubmittingModal() string {
	return fmt.Sprintf("%s Invio in corso...", m.Spinner.View())
}

func (m WizardModel) renderFailureModal() string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("✗ Invio non riuscito"))
	b.WriteString("\n\n")
	b.WriteString(api.ShortMessage(m.gate.Err()))
	b.WriteString("\n\n")
	b.WriteString(MenuItemStyle.Render("r/enter - riprova    esc - torna al modulo"))
	return b.String()
}

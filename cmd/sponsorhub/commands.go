package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sponsorhub/sponsorhub/internal/api"
	"github.com/sponsorhub/sponsorhub/internal/config"
	"github.com/sponsorhub/sponsorhub/internal/events"
	"github.com/sponsorhub/sponsorhub/internal/form"
	"github.com/sponsorhub/sponsorhub/internal/session"
	"github.com/sponsorhub/sponsorhub/internal/tui"
	"github.com/sponsorhub/sponsorhub/internal/ui"
)

// Command flags
var (
	profileName  string
	serverURL    string
	outputFormat string

	// Flags for `task`
	taskDescrizione string
	taskAssegnato   string
	taskScadenza    string

	// Flags for `update-club`
	clubNome      string
	clubCitta     string
	clubSport     string
	clubEmail     string
	clubTelefono  string
	clubReferente string
	clubLogoURL   string
	clubNote      string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Configuration profile to use")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(clubsCmd)
	rootCmd.AddCommand(sponsorsCmd)
	rootCmd.AddCommand(contractsCmd)
	rootCmd.AddCommand(contractCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(updateClubCmd)
	rootCmd.AddCommand(deleteClubCmd)
	rootCmd.AddCommand(uploadCmd)
}

// loginCmd authenticates and stores the session in the profile
var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Log in and store the session",
	Long: `Authenticate against the Sponsorhub backend and store the session
token in the configuration profile.

The password is read interactively and never stored; only the resulting
bearer token is saved.`,
	Example: `  # Log in to production
  sponsorhub login mario@asdcalcio.it --url https://api.sponsorhub.it

  # Log in to staging under a named profile
  sponsorhub login mario@asdcalcio.it --url https://staging.sponsorhub.it --profile staging`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&serverURL, "url", "", "Backend URL (defaults to the profile's stored URL)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	email := args[0]

	registry, err := config.GetGlobalRegistry()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	name := profileName
	if name == "" {
		name = registry.DefaultProfileName()
	}

	baseURL := serverURL
	if baseURL == "" {
		if p := registry.GetProfile(name); p != nil {
			baseURL = p.BaseURL
		}
	}
	if baseURL == "" {
		return fmt.Errorf("no backend URL: pass --url on first login")
	}

	fmt.Printf("Password per %s: ", email)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	result, err := api.Login(cmd.Context(), baseURL, email, string(password))
	if err != nil {
		ui.PrintFailure("Accesso non riuscito", err, []string{
			"Controlla email e password",
			"Verifica che l'URL del server sia corretto",
		})
		return err
	}

	registry.SetLogin(name, baseURL, result.Token, result.User.Ruolo,
		result.User.ID, result.User.Nome, result.User.Email)
	if err := config.SaveGlobal(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	ui.PrintSuccess("Accesso effettuato", map[string]string{
		"Utente":  result.User.Nome,
		"Ruolo":   result.User.Ruolo,
		"Profilo": name,
	})
	return nil
}

// logoutCmd clears the stored token
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and discard the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.GetGlobalRegistry()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		name := profileName
		if name == "" {
			name = registry.DefaultProfileName()
		}
		registry.ClearToken(name)
		if err := config.SaveGlobal(); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		fmt.Printf("Sessione del profilo %q eliminata.\n", name)
		return nil
	},
}

// dashboardCmd launches the interactive TUI (also the default command)
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard shows aggregate counters and the contract list, receives
live backend notifications, and provides guided forms for creating
contracts and checklist tasks.`,
	Example: `  # Launch the dashboard
  sponsorhub dashboard
  # Or simply (dashboard is default):
  sponsorhub`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	sess, client, profile, err := loadSession()
	if err != nil {
		return err
	}

	// Live notifications are best effort: the dashboard works without them.
	notifier, err := events.NewSubscriber(profile.BaseURL, sess.Token)
	if err != nil {
		notifier = nil
	}
	if notifier != nil {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		notifier.Start(ctx)
		defer notifier.Close()
	}

	model := tui.NewAppModel(client, sess, notifier)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// clubsCmd lists clubs
var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "List clubs",
	Example: `  # List clubs
  sponsorhub clubs

  # JSON output for scripting
  sponsorhub clubs --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadSession()
		if err != nil {
			return err
		}

		clubs, err := client.ListClubs(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list clubs: %w", err)
		}

		if outputFormat == "json" {
			return printJSON(clubs)
		}

		if len(clubs) == 0 {
			fmt.Println("Nessun club presente.")
			return nil
		}
		for _, c := range clubs {
			fmt.Printf("%-4d %-30s %-20s %s\n", c.ID, c.Nome, c.Citta, c.Sport)
		}
		return nil
	},
}

// sponsorsCmd lists sponsors
var sponsorsCmd = &cobra.Command{
	Use:   "sponsors",
	Short: "List sponsors",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadSession()
		if err != nil {
			return err
		}

		sponsors, err := client.ListSponsors(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sponsors: %w", err)
		}

		if outputFormat == "json" {
			return printJSON(sponsors)
		}

		if len(sponsors) == 0 {
			fmt.Println("Nessuno sponsor presente.")
			return nil
		}
		for _, s := range sponsors {
			fmt.Printf("%-4d %-30s %s\n", s.ID, s.Nome, s.Settore)
		}
		return nil
	},
}

// contractsCmd lists contracts
var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "List contracts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, _, err := loadSession()
		if err != nil {
			return err
		}

		contracts, err := client.ListContracts(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list contracts: %w", err)
		}

		if outputFormat == "json" {
			return printJSON(contracts)
		}

		if len(contracts) == 0 {
			fmt.Println("Nessun contratto presente.")
			return nil
		}
		for _, c := range contracts {
			fmt.Printf("%-4d %-10s %-35s %12s\n", c.ID, c.Stato, c.Titolo, tui.FormatAmount(c.TotalCents))
		}
		return nil
	},
}

// contractCmd shows one contract with its checklist
var contractCmd = &cobra.Command{
	Use:   "contract <id>",
	Short: "Show a contract and its checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid contract id: %w", err)
		}

		_, client, _, err := loadSession()
		if err != nil {
			return err
		}

		contract, err := client.GetContract(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get contract: %w", err)
		}
		tasks, err := client.ListChecklist(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get checklist: %w", err)
		}

		if outputFormat == "json" {
			return printJSON(map[string]any{"contratto": contract, "checklist": tasks})
		}

		fmt.Printf("%s (%s)\n", contract.Titolo, contract.Stato)
		fmt.Printf("  Periodo:    %s", contract.DataInizio)
		if contract.DataFine != "" {
			fmt.Printf(" / %s", contract.DataFine)
		}
		fmt.Println()
		fmt.Printf("  Imponibile: %s\n", tui.FormatAmount(contract.SubtotalCents))
		fmt.Printf("  IVA:        %s\n", tui.FormatAmount(contract.TaxCents))
		fmt.Printf("  Totale:     %s\n", tui.FormatAmount(contract.TotalCents))
		if contract.ContrattoURL != "" {
			fmt.Printf("  Documento:  %s\n", client.ResolveFileURL(contract.ContrattoURL))
		}

		fmt.Printf("\nChecklist (%d):\n", len(tasks))
		for _, t := range tasks {
			mark := "[ ]"
			if t.Completato {
				mark = "[x]"
			}
			line := fmt.Sprintf("  %s %s (%s)", mark, t.Titolo, t.AssegnatoA)
			if t.Scadenza != "" {
				line += " · scadenza " + t.Scadenza
			}
			fmt.Println(line)
		}
		return nil
	},
}

// taskCmd adds a checklist task to a contract
var taskCmd = &cobra.Command{
	Use:   "task <contract-id> <titolo>",
	Short: "Add a checklist task to a contract",
	Example: `  # Add a task assigned to the club
  sponsorhub task 12 "Consegna loghi sponsor" --assegnato club

  # With a deadline
  sponsorhub task 12 "Posa striscione LED" --assegnato sponsor --scadenza 2026-10-15`,
	Args: cobra.ExactArgs(2),
	RunE: runTask,
}

func init() {
	taskCmd.Flags().StringVar(&taskDescrizione, "descrizione", "", "Task description")
	taskCmd.Flags().StringVar(&taskAssegnato, "assegnato", "club", "Assignee (club or sponsor)")
	taskCmd.Flags().StringVar(&taskScadenza, "scadenza", "", "Deadline (YYYY-MM-DD)")
}

func runTask(cmd *cobra.Command, args []string) error {
	contractID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contract id: %w", err)
	}

	draft := form.NewChecklistDraft()
	draft[form.ChecklistFieldTitolo] = args[1]
	draft[form.ChecklistFieldDescrizione] = taskDescrizione
	draft[form.ChecklistFieldAssegnatoA] = taskAssegnato
	draft[form.ChecklistFieldScadenza] = taskScadenza

	if errs := form.ValidateChecklist(draft); len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
		}
		return fmt.Errorf("dati del task non validi")
	}

	_, client, _, err := loadSession()
	if err != nil {
		return err
	}

	runner := ui.NewTaskRunner(ui.TaskRunnerConfig{
		Title:      "NUOVO TASK",
		Command:    "sponsorhub task",
		Params:     map[string]string{"Contratto": args[0], "Titolo": args[1]},
		TotalSteps: 1,
		StepNames:  []string{"Invio al server"},
	})

	_, err = runner.RunWithResult(cmd.Context(), func(onStep ui.StepCallback) (map[string]string, error) {
		onStep(1, "Invio al server", ui.StepRunning, "")
		task, err := client.CreateChecklistTask(cmd.Context(), contractID,
			form.ChecklistPayload(draft), api.WithIdempotencyKey(uuid.NewString()))
		if err != nil {
			onStep(1, "Invio al server", ui.StepFailed, "")
			return nil, err
		}
		onStep(1, "Invio al server", ui.StepComplete, "")
		return map[string]string{
			"ID task":   strconv.FormatInt(task.ID, 10),
			"Assegnato": task.AssegnatoA,
		}, nil
	})
	return err
}

// updateClubCmd edits a club record field by field
var updateClubCmd = &cobra.Command{
	Use:   "update-club <id>",
	Short: "Update a club's registry data",
	Long: `Update a club record. The current record is fetched first; only the
fields passed as flags are changed, the rest keep their stored values.
The merged record is validated before anything is sent.`,
	Example: `  # Move a club to a new city
  sponsorhub update-club 3 --citta "Pisa"

  # Fix the contact email and set a referent
  sponsorhub update-club 3 --email segreteria@club.it --referente "Anna Bianchi"`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdateClub,
}

func init() {
	updateClubCmd.Flags().StringVar(&clubNome, "nome", "", "Club name")
	updateClubCmd.Flags().StringVar(&clubCitta, "citta", "", "City")
	updateClubCmd.Flags().StringVar(&clubSport, "sport", "", "Sport (calcio, basket, volley, rugby, altro)")
	updateClubCmd.Flags().StringVar(&clubEmail, "email", "", "Contact email")
	updateClubCmd.Flags().StringVar(&clubTelefono, "telefono", "", "Phone number")
	updateClubCmd.Flags().StringVar(&clubReferente, "referente", "", "Contact person")
	updateClubCmd.Flags().StringVar(&clubLogoURL, "logo", "", "Logo URL")
	updateClubCmd.Flags().StringVar(&clubNote, "note", "", "Notes")
}

func runUpdateClub(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid club id: %w", err)
	}

	_, client, _, err := loadSession()
	if err != nil {
		return err
	}

	club, err := client.GetClub(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get club: %w", err)
	}

	// Seed the draft from the stored record, then overlay the flags the
	// user actually passed.
	draft := form.SeedClubDraft(map[string]string{
		form.ClubFieldNome:      club.Nome,
		form.ClubFieldCitta:     club.Citta,
		form.ClubFieldSport:     club.Sport,
		form.ClubFieldEmail:     club.Email,
		form.ClubFieldTelefono:  club.Telefono,
		form.ClubFieldReferente: club.Referente,
		form.ClubFieldLogoURL:   club.LogoURL,
		form.ClubFieldNote:      club.Note,
	})
	overrides := map[string]*string{
		"nome":      &clubNome,
		"citta":     &clubCitta,
		"sport":     &clubSport,
		"email":     &clubEmail,
		"telefono":  &clubTelefono,
		"referente": &clubReferente,
		"logo":      &clubLogoURL,
		"note":      &clubNote,
	}
	fields := map[string]string{
		"nome":      form.ClubFieldNome,
		"citta":     form.ClubFieldCitta,
		"sport":     form.ClubFieldSport,
		"email":     form.ClubFieldEmail,
		"telefono":  form.ClubFieldTelefono,
		"referente": form.ClubFieldReferente,
		"logo":      form.ClubFieldLogoURL,
		"note":      form.ClubFieldNote,
	}
	for flag, value := range overrides {
		if cmd.Flags().Changed(flag) {
			draft[fields[flag]] = *value
		}
	}

	errs := form.FieldErrors{}
	for _, step := range form.ClubSteps() {
		errs = errs.Merge(step.Validate(draft))
	}
	if len(errs) > 0 {
		for _, msg := range errs {
			fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
		}
		return fmt.Errorf("dati del club non validi")
	}

	runner := ui.NewTaskRunner(ui.TaskRunnerConfig{
		Title:      "MODIFICA CLUB",
		Command:    "sponsorhub update-club",
		Params:     map[string]string{"Club": club.Nome},
		TotalSteps: 1,
		StepNames:  []string{"Invio al server"},
	})

	_, err = runner.RunWithResult(cmd.Context(), func(onStep ui.StepCallback) (map[string]string, error) {
		onStep(1, "Invio al server", ui.StepRunning, "")
		updated, err := client.UpdateClub(cmd.Context(), id,
			form.ClubPayload(draft), api.WithIdempotencyKey(uuid.NewString()))
		if err != nil {
			onStep(1, "Invio al server", ui.StepFailed, "")
			return nil, err
		}
		onStep(1, "Invio al server", ui.StepComplete, "")
		return map[string]string{
			"Nome":  updated.Nome,
			"Città": updated.Citta,
		}, nil
	})
	return err
}

// deleteClubCmd removes a club after explicit confirmation
var deleteClubCmd = &cobra.Command{
	Use:   "delete-club <id>",
	Short: "Delete a club (admin only)",
	Long: `Delete a club and all its data from the backend.

This operation is irreversible and requires an interactive confirmation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid club id: %w", err)
		}

		sess, client, _, err := loadSession()
		if err != nil {
			return err
		}
		if err := session.Require(sess, session.RoleAdmin); err != nil {
			return err
		}

		club, err := client.GetClub(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get club: %w", err)
		}

		if !ui.DeleteClubConfirmation(club.Nome) {
			fmt.Println("Operazione annullata.")
			return nil
		}

		if err := client.DeleteClub(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete club: %w", err)
		}
		ui.PrintSuccess("Club eliminato", map[string]string{"Nome": club.Nome})
		return nil
	},
}

// uploadCmd uploads a file and prints the URL to reference in a contract
var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document",
	Long: `Upload a document (signed contract, logo) to the backend.

The returned URL can be referenced in a contract or club record.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func runUpload(cmd *cobra.Command, args []string) error {
	path := args[0]

	_, client, _, err := loadSession()
	if err != nil {
		return err
	}

	runner := ui.NewTaskRunner(ui.TaskRunnerConfig{
		Title:      "CARICAMENTO DOCUMENTO",
		Command:    "sponsorhub upload",
		Params:     map[string]string{"File": path},
		TotalSteps: 2,
		StepNames:  []string{"Lettura file", "Caricamento"},
	})

	_, err = runner.RunWithResult(cmd.Context(), func(onStep ui.StepCallback) (map[string]string, error) {
		onStep(1, "Lettura file", ui.StepRunning, "")
		f, err := os.Open(path)
		if err != nil {
			onStep(1, "Lettura file", ui.StepFailed, "")
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		onStep(1, "Lettura file", ui.StepComplete, "")

		onStep(2, "Caricamento", ui.StepRunning, "")
		result, err := client.Upload(cmd.Context(), filepath.Base(path), f)
		if err != nil {
			onStep(2, "Caricamento", ui.StepFailed, "")
			return nil, err
		}
		onStep(2, "Caricamento", ui.StepComplete, fmt.Sprintf("%d byte", result.FileSize))

		return map[string]string{
			"URL":  client.ResolveFileURL(result.FileURL),
			"Tipo": result.FileType,
		}, nil
	})
	return err
}

// loadSession builds the authenticated session and API client from the
// stored profile. Every command except login goes through here.
func loadSession() (*session.Session, *api.Client, *config.Profile, error) {
	registry, err := config.GetGlobalRegistry()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	name := profileName
	if name == "" {
		name = registry.DefaultProfileName()
	}

	profile := registry.GetProfile(name)
	if profile == nil || profile.Token == "" {
		return nil, nil, nil, fmt.Errorf("nessuna sessione per il profilo %q: esegui 'sponsorhub login'", name)
	}

	role, err := session.ParseRole(profile.Role)
	if err != nil {
		return nil, nil, nil, err
	}

	sess := &session.Session{
		User: session.User{
			ID:    profile.UserID,
			Nome:  profile.UserName,
			Email: profile.UserEmail,
			Role:  role,
		},
		Token: profile.Token,
	}

	client := api.NewClient(profile.BaseURL, string(role), profile.Token)
	return sess, client, profile, nil
}

// printJSON renders any value as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// Sponsorhub is a terminal client for the Sponsorhub sponsorship platform.
//
// It manages sports clubs, sponsors and sponsorship contracts against the
// Sponsorhub backend, with an interactive dashboard and step-by-step forms
// for the common flows (new contract, new checklist task).
//
// Usage:
//
//	sponsorhub [command] [flags]
//
// Running without arguments launches the interactive dashboard.
// See 'sponsorhub --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sponsorhub/sponsorhub/internal/logging"
	"github.com/sponsorhub/sponsorhub/internal/version"
)

func main() {
	logging.InitializeFromEnv()
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Errore: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sponsorhub",
	Short: "Sponsorhub terminal client",
	Long: `A terminal client for the Sponsorhub sponsorship platform.

Manages sports clubs, sponsors and sponsorship contracts, with an
interactive dashboard and guided forms for creating contracts and
checklist tasks.

If no command is specified, the interactive dashboard will launch
automatically (login required).`,
	Version: version.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the dashboard when no subcommand provided
		return runDashboard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sponsorhub %s (commit: %s)\n", version.Version, version.Commit)
	},
}

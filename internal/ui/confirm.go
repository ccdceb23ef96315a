package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmDestructiveOperation displays a warning box and prompts the user to
// type "ELIMINA" to proceed with a destructive operation. Returns true if the
// user confirmed, false otherwise.
func ConfirmDestructiveOperation(title string, warnings []string) bool {
	width := GetTerminalWidth()
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string

	// Title with warning marker
	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   ⚠  ATTENZIONE  %s", title))
	lines = append(lines, "")
	lines = append(lines, titleLine)
	lines = append(lines, "")

	// Warning bullet points
	for _, warning := range warnings {
		bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	content := strings.Join(lines, "\n")

	// Double border in orange/warning color
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(content)

	fmt.Println(box)
	fmt.Println()

	// Prompt for confirmation
	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	fmt.Print(promptStyle.Render("Per procedere, digita \"ELIMINA\" e premi Invio: "))

	// Read user input
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return false
	}

	input = strings.TrimSpace(input)
	if input == "ELIMINA" {
		fmt.Println()
		return true
	}

	// User did not agree
	fmt.Println()
	cancelStyle := lipgloss.NewStyle().Foreground(MutedColor)
	fmt.Println(cancelStyle.Render("  Operazione annullata."))
	fmt.Println()
	return false
}

// ConfirmYesNo asks a simple yes/no question on stdin.
// Accepts "s", "si", "sì" and "y" as yes; everything else is no.
func ConfirmYesNo(question string) bool {
	promptStyle := lipgloss.NewStyle().Bold(true)
	fmt.Print(promptStyle.Render(question + " [s/N]: "))

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println()
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "s", "si", "sì", "y", "yes":
		return true
	default:
		return false
	}
}

// DeleteClubConfirmation is a pre-configured confirmation for club deletion
func DeleteClubConfirmation(clubName string) bool {
	return ConfirmDestructiveOperation(
		"ELIMINAZIONE CLUB",
		[]string{
			fmt.Sprintf("Il club \"%s\" verrà eliminato definitivamente", clubName),
			"I contratti collegati resteranno nello storico ma senza anagrafica",
			"L'operazione non può essere annullata",
		},
	)
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RawOutput represents a box for displaying a raw API response.
// Used in verbose mode to show exactly what the backend returned.
type RawOutput struct {
	Title    string   // e.g., "Risposta API"
	Content  string   // The raw response body
	Lines    []string // Parsed output lines (for truncation)
	Width    int      // Terminal width
	MaxLines int      // Maximum lines to display (0 = unlimited)
}

// NewRawOutput creates a new raw response box
func NewRawOutput(content string) *RawOutput {
	return &RawOutput{
		Title:    "Risposta API",
		Content:  content,
		Lines:    strings.Split(content, "\n"),
		Width:    GetTerminalWidth(),
		MaxLines: 0,
	}
}

// SetWidth sets the terminal width for responsive rendering
func (g *RawOutput) SetWidth(width int) *RawOutput {
	g.Width = width
	return g
}

// SetTitle sets a custom title for the box
func (g *RawOutput) SetTitle(title string) *RawOutput {
	g.Title = title
	return g
}

// SetMaxLines limits the number of lines displayed
func (g *RawOutput) SetMaxLines(max int) *RawOutput {
	g.MaxLines = max
	return g
}

// Render returns the styled raw response box as a string
func (g *RawOutput) Render() string {
	width := g.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	// Apply max lines limit
	lines := g.Lines
	if g.MaxLines > 0 && len(lines) > g.MaxLines {
		lines = lines[:g.MaxLines]
		lines = append(lines, "... (output troncato)")
	}

	// Title styled
	titleStyled := RawOutputTitleStyle.Render(g.Title)

	// Content styled (preserve monospace formatting)
	contentStyled := RawOutputContentStyle.Render(strings.Join(lines, "\n"))

	// Combine title and content
	inner := lipgloss.JoinVertical(lipgloss.Left, titleStyled, "", contentStyled)

	// Box with muted border
	boxWidth := width - 4
	if boxWidth < 40 {
		boxWidth = 40
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(boxWidth).
		Padding(0, 1).
		MarginLeft(2).
		Render(inner)
}

// String implements fmt.Stringer
func (g *RawOutput) String() string {
	return g.Render()
}

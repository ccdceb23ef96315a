package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// TaskRunnerConfig holds configuration for a multi-step command execution
type TaskRunnerConfig struct {
	Title      string            // Command title (e.g., "Nuovo contratto")
	Command    string            // Full command (e.g., "sponsorhub contract new")
	Params     map[string]string // Parameters to display in header
	TotalSteps int               // Total number of steps (for progress)
	StepNames  []string          // Names for each step
	Verbose    bool              // Whether to show raw API responses
	Output     io.Writer         // Output writer (default: os.Stdout)
}

// TaskRunner orchestrates the UI for a multi-step command execution.
// It manages the header, progress and result flow and provides
// callbacks for reporting progress.
type TaskRunner struct {
	config    TaskRunnerConfig
	header    *Header
	progress  *Progress
	output    io.Writer
	rawOutput string
	startTime time.Time
	width     int
}

// NewTaskRunner creates a new runner for a multi-step command
func NewTaskRunner(config TaskRunnerConfig) *TaskRunner {
	// Set defaults
	if config.Output == nil {
		config.Output = os.Stdout
	}

	width := GetTerminalWidth()

	// Create header
	header := NewHeader(config.Title, config.Command, config.Params)
	header.SetWidth(width)

	// Create progress tracker
	var progress *Progress
	if config.TotalSteps > 0 {
		progress = NewProgress("", config.TotalSteps)
		progress.SetWidth(width)
		if len(config.StepNames) > 0 {
			progress.SetStepNames(config.StepNames)
		}
	}

	return &TaskRunner{
		config:   config,
		header:   header,
		progress: progress,
		output:   config.Output,
		width:    width,
	}
}

// TaskOperation is the function signature for the actual operation.
// The operation receives a StepCallback to report progress.
type TaskOperation func(onStep StepCallback) error

// Run executes the operation with UI updates.
// It displays the header, tracks progress, and shows the result.
func (r *TaskRunner) Run(ctx context.Context, operation TaskOperation) error {
	r.startTime = time.Now()

	// Print header
	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	// Create step callback
	stepCallback := r.createStepCallback()

	// Execute the operation
	err := operation(stepCallback)
	duration := time.Since(r.startTime)

	// Print final result
	if err != nil {
		r.printFailure(err, duration)
	} else {
		r.printSuccess(nil, duration)
	}

	return err
}

// RunWithResult executes the operation and allows custom result details.
// Returns the result details that were displayed.
func (r *TaskRunner) RunWithResult(ctx context.Context, operation func(onStep StepCallback) (map[string]string, error)) (map[string]string, error) {
	r.startTime = time.Now()

	// Print header
	_, _ = fmt.Fprintln(r.output, r.header.Render())
	_, _ = fmt.Fprintln(r.output)

	// Create step callback
	stepCallback := r.createStepCallback()

	// Execute the operation
	details, err := operation(stepCallback)
	duration := time.Since(r.startTime)

	// Print final result
	if err != nil {
		r.printFailure(err, duration)
	} else {
		r.printSuccess(details, duration)
	}

	return details, err
}

// SetRawOutput stores a raw API response for verbose display
func (r *TaskRunner) SetRawOutput(output string) {
	r.rawOutput = output
}

// createStepCallback creates the step callback function
func (r *TaskRunner) createStepCallback() StepCallback {
	return func(stepNumber int, name string, status StepStatus, message string) {
		if r.progress == nil {
			return
		}

		// Update step name if provided
		if name != "" && stepNumber > 0 && stepNumber <= len(r.progress.Steps) {
			r.progress.Steps[stepNumber-1].Name = name
		}

		// Update step status
		r.progress.UpdateStep(stepNumber, status, message)

		// Print progress line
		if status == StepComplete || status == StepFailed || status == StepSkipped {
			// Print completed step
			step := r.progress.Steps[stepNumber-1]
			_, _ = fmt.Fprintln(r.output, r.progress.renderStepLine(step))
		} else if status == StepRunning {
			// Print running step (will be overwritten when complete)
			step := r.progress.Steps[stepNumber-1]
			_, _ = fmt.Fprint(r.output, r.progress.renderStepLine(step)+"\r")
		}
	}
}

// printSuccess prints a success result
func (r *TaskRunner) printSuccess(details map[string]string, duration time.Duration) {
	_, _ = fmt.Fprintln(r.output)

	if details == nil {
		details = make(map[string]string)
	}
	details["Durata"] = duration.Round(time.Millisecond).String()

	result := NewSuccessResult(r.config.Title, details)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())

	// Show raw response in verbose mode
	if r.config.Verbose && r.rawOutput != "" {
		_, _ = fmt.Fprintln(r.output)
		raw := NewRawOutput(r.rawOutput)
		raw.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, raw.Render())
	}
}

// printFailure prints a failure result with recovery hints
func (r *TaskRunner) printFailure(err error, duration time.Duration) {
	_, _ = fmt.Fprintln(r.output)

	hints := []string{
		"Controlla la connessione al backend",
		"Verifica il token con: sponsorhub login",
		"Riprova con --verbose per la risposta completa",
	}

	result := NewFailureResult(r.config.Title, err, hints)
	result.SetWidth(r.width)
	_, _ = fmt.Fprintln(r.output, result.Render())

	// Always show raw response on failure in verbose mode
	if r.config.Verbose && r.rawOutput != "" {
		_, _ = fmt.Fprintln(r.output)
		raw := NewRawOutput(r.rawOutput)
		raw.SetWidth(r.width)
		_, _ = fmt.Fprintln(r.output, raw.Render())
	}
}

// --- Simple helper functions for commands that don't need full TaskRunner ---

// PrintCommandHeader prints a styled command header
func PrintCommandHeader(title, command string, params map[string]string) {
	width := GetTerminalWidth()
	header := NewHeader(title, command, params)
	header.SetWidth(width)
	fmt.Println(header.Render())
	fmt.Println()
}

// PrintSuccess prints a styled success result
func PrintSuccess(title string, details map[string]string) {
	width := GetTerminalWidth()
	result := NewSuccessResult(title, details)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintFailure prints a styled failure result
func PrintFailure(title string, err error, hints []string) {
	width := GetTerminalWidth()
	result := NewFailureResult(title, err, hints)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintWarning prints a styled warning result
func PrintWarning(title string, details map[string]string) {
	width := GetTerminalWidth()
	result := NewWarningResult(title, details)
	result.SetWidth(width)
	fmt.Println()
	fmt.Println(result.Render())
}

// PrintRawOutput prints a styled raw response box (for verbose mode)
func PrintRawOutput(output string) {
	width := GetTerminalWidth()
	raw := NewRawOutput(output)
	raw.SetWidth(width)
	fmt.Println()
	fmt.Println(raw.Render())
}

// PrintPleaseWait prints a styled "please wait" message for long-running operations.
// The message parameter should describe what's happening, e.g., "Caricamento documenti".
// The duration hint helps set user expectations, e.g., "fino a 60 secondi".
func PrintPleaseWait(message string, durationHint string) {
	// Use primary/purple color - stands out but doesn't cause alarm
	style := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true).
		PaddingLeft(2)

	hintStyle := lipgloss.NewStyle().
		Foreground(MutedColor).
		Italic(true)

	line := style.Render("⏳ " + message)
	if durationHint != "" {
		line += " " + hintStyle.Render("("+durationHint+")")
	}
	line += style.Render("...")

	fmt.Println()
	fmt.Println(line)
	fmt.Println()
}

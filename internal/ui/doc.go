// Package ui provides terminal UI components for the sponsorhub CLI.
//
// This package uses Bubble Tea and Lipgloss to render polished terminal output
// for one-shot CLI commands. Unlike the interactive TUI in internal/tui, these
// components follow a "run once and exit" pattern - they render output
// compellingly but don't require user interaction.
//
// # Architecture
//
// The UI package provides four main component types:
//
//   - Header: Command banner showing operation name and parameters
//   - Progress: Progress bar with step list showing real-time status
//   - Result: Success/failure boxes with styled information
//   - RawOutput: Raw API response box for verbose mode
//
// These components are orchestrated by the TaskRunner, which manages the
// header, progress and result flow for multi-step command execution.
//
// # Usage Pattern
//
// Multi-step commands use this package by:
//
//  1. Creating a TaskRunner with command metadata
//  2. Calling Run() with their operation function
//  3. The operation reports progress via a step callback
//  4. TaskRunner handles all UI rendering automatically
//
// Example:
//
//	runner := ui.NewTaskRunner(ui.TaskRunnerConfig{
//	    Title:      "Nuovo contratto",
//	    Command:    "sponsorhub contract new",
//	    Params:     map[string]string{"Profilo": "default"},
//	    TotalSteps: 3,
//	    Verbose:    verbose,
//	})
//
//	err := runner.Run(ctx, func(onStep ui.StepCallback) error {
//	    onStep(1, "Caricamento documenti", ui.StepRunning, "")
//	    // ... do work ...
//	    onStep(1, "Caricamento documenti", ui.StepComplete, "")
//	    return nil
//	})
//
// # Logging Integration
//
// This package expects logging to be controlled via the SPONSORHUB_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the curated UI output to be displayed cleanly. Set SPONSORHUB_LOG_LEVEL to
// "debug", "info", "warn", or "error" to enable logging output.
//
// # Verbose Mode
//
// When --verbose is passed, the RawOutput component displays the raw API
// response in a styled box after the result. This is useful for debugging
// and seeing exactly what the backend returned.
package ui

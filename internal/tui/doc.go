// Package tui implements the interactive terminal interface of sponsorhub.
//
// The interface is built with Bubble Tea and organized around a single
// coordinator model (AppModel) that owns the active screen and routes
// messages to it:
//
//   - DashboardModel: landing screen with aggregate counters, the contract
//     list, and live backend notifications rendered as toasts.
//   - WizardModel: step-gated forms for new contracts and checklist tasks,
//     with a confirmation prompt and a single-flight submit.
//
// Screens render inside a shared full-screen container (see styles.go) so
// headers, footers, and modals look identical everywhere. All user-facing
// text is Italian, matching the platform's audience.
package tui

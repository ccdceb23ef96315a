// Package form implements the step-gated wizard engine behind the entity
// creation and editing flows (clubs, contracts, checklist tasks).
//
// # Model
//
// Every wizard works on a single flat Draft shared by all of its steps. A
// Step owns a pure validator that inspects the draft and returns FieldErrors
// for its own fields. The Wizard tracks the current step and the highest step
// that has ever passed validation, and enforces the navigation policy:
//
//   - Next validates before advancing and surfaces errors on failure
//   - Prev always works and never validates
//   - GoTo refuses jumps past unvalidated steps
//   - ValidateAll unions every step's errors right before submission
//
// Editing a field clears that field's pending error immediately without
// re-validating; full validation only runs on Next and ValidateAll. This
// trades strictness for responsiveness while the user is typing.
//
// # Entity forms
//
// The package also defines the concrete drafts, validators, and payload
// builders for each entity:
//
//	w := form.NewWizard(form.ContractSteps(), form.NewContractDraft())
//	w.SetField(form.ContractFieldPrezzoBase, "1000")
//	totals := form.ContractTotals(w.Draft()) // live pricing preview
//
// Validation messages are the Italian strings rendered inline in the UI.
// Payload builders omit optional empty fields instead of sending empty
// strings, matching what the backend expects.
package form

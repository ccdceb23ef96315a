package form

import "fmt"

// Draft is the in-progress, unsaved field set of an entity being created or
// edited. Keys are the fixed field names of the entity; values start empty and
// are filled as the user types. A Draft is owned by exactly one wizard
// instance and is discarded on successful submit.
type Draft map[string]string

// Clone returns an independent copy of the draft.
func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// FieldErrors maps a field name to a human-readable validation message.
// An empty map means the validated fields are all acceptable. Error maps
// are recomputed whole on every validation pass, never merged.
type FieldErrors map[string]string

// Merge copies all entries of other into e, returning e for chaining.
func (e FieldErrors) Merge(other FieldErrors) FieldErrors {
	for k, v := range other {
		e[k] = v
	}
	return e
}

// Step is one page of a wizard form. Validate inspects the shared draft and
// returns the errors for this step's fields only.
type Step struct {
	Title    string
	Validate func(Draft) FieldErrors
}

// Wizard drives a linear, step-gated form flow over a single draft.
// Forward navigation requires the current step to validate; backward
// navigation is always allowed; jumping is allowed only up to one step past
// the highest step that ever passed validation.
type Wizard struct {
	steps            []Step
	draft            Draft
	current          int
	highestValidated int
	errors           FieldErrors
}

// NewWizard builds a wizard over the given steps and draft. The step list is
// static for the lifetime of the wizard. A step without a validator is a
// programming error, not a runtime condition, so it panics.
func NewWizard(steps []Step, draft Draft) *Wizard {
	if len(steps) == 0 {
		panic("form: wizard requires at least one step")
	}
	for i, s := range steps {
		if s.Validate == nil {
			panic(fmt.Sprintf("form: step %d (%q) has no validator", i, s.Title))
		}
	}
	if draft == nil {
		draft = Draft{}
	}
	return &Wizard{
		steps:            steps,
		draft:            draft,
		highestValidated: -1,
		errors:           FieldErrors{},
	}
}

// Current returns the index of the active step.
func (w *Wizard) Current() int { return w.current }

// StepCount returns the number of steps.
func (w *Wizard) StepCount() int { return len(w.steps) }

// CurrentStep returns the active step definition.
func (w *Wizard) CurrentStep() Step { return w.steps[w.current] }

// OnLastStep reports whether the wizard is on its final step.
func (w *Wizard) OnLastStep() bool { return w.current == len(w.steps)-1 }

// Draft returns the wizard's draft. Mutate fields through SetField so that
// stale validation errors are cleared.
func (w *Wizard) Draft() Draft { return w.draft }

// Field returns the current value of a draft field.
func (w *Wizard) Field(name string) string { return w.draft[name] }

// SetField updates a draft field and clears any pending validation error for
// that field. The field is not re-validated here; full validation happens on
// Next or ValidateAll. This optimistic clearing keeps typing responsive.
func (w *Wizard) SetField(name, value string) {
	w.draft[name] = value
	delete(w.errors, name)
}

// Errors returns the validation errors currently visible to the user.
func (w *Wizard) Errors() FieldErrors { return w.errors }

// Next validates the current step. On failure the errors become visible and
// the wizard stays put, returning false. On success it advances (clamped to
// the last step) and records the step as validated.
func (w *Wizard) Next() bool {
	errs := w.steps[w.current].Validate(w.draft)
	if len(errs) > 0 {
		w.errors = errs
		return false
	}

	w.errors = FieldErrors{}
	if w.current > w.highestValidated {
		w.highestValidated = w.current
	}
	if w.current < len(w.steps)-1 {
		w.current++
	}
	return true
}

// Prev moves back one step, clamped at the first. Never validates.
func (w *Wizard) Prev() {
	if w.current > 0 {
		w.current--
	}
}

// GoTo jumps directly to step n. The jump is refused (no-op, returns false)
// when n would skip past unvalidated steps, which guards step-indicator
// clicks from bypassing the gate.
func (w *Wizard) GoTo(n int) bool {
	if n < 0 || n >= len(w.steps) {
		return false
	}
	if n > w.highestValidated+1 {
		return false
	}
	w.current = n
	return true
}

// ValidateAll runs every step's validator against the current draft and
// returns the union of their errors. Used once right before submission to
// catch a step the user backtracked into and broke.
func (w *Wizard) ValidateAll() FieldErrors {
	all := FieldErrors{}
	for _, s := range w.steps {
		all.Merge(s.Validate(w.draft))
	}
	return all
}

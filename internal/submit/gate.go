// Package submit implements the confirm-then-submit gate that sits between a
// valid wizard draft and the network mutation that persists it.
//
// The gate is a small state machine (Idle, Confirming, Submitting, Succeeded,
// Failed) with one concurrency guarantee: at most one mutation is ever in
// flight, no matter how quickly the user confirms twice. Each dispatched
// mutation carries a fresh idempotency key so an accidental server-side
// duplicate can also be suppressed.
package submit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sponsorhub/sponsorhub/internal/form"
)

// State is the submission lifecycle position.
type State int

const (
	// StateIdle: the form is being edited, no submit intent.
	StateIdle State = iota
	// StateConfirming: the draft validated and the confirmation prompt is up.
	StateConfirming
	// StateSubmitting: the single network mutation is in flight.
	StateSubmitting
	// StateSucceeded: the mutation was accepted.
	StateSucceeded
	// StateFailed: the mutation was rejected or the transport failed.
	StateFailed
)

// String returns the state name for logs and tests.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SuccessNavigateDelay is how long the success notice stays visible before
// the screen navigates away.
const SuccessNavigateDelay = 1500 * time.Millisecond

// Submitter performs the actual create-or-update call. It is invoked at most
// once per successful Confirm, with a unique idempotency key.
type Submitter func(ctx context.Context, idempotencyKey string) error

// Gate serializes the submission of one form instance.
type Gate struct {
	mu      sync.Mutex
	state   State
	lastErr error
	submit  Submitter
}

// NewGate creates a gate around the given submitter. A nil submitter is a
// programming error.
func NewGate(submit Submitter) *Gate {
	if submit == nil {
		panic("submit: gate requires a submitter")
	}
	return &Gate{state: StateIdle, submit: submit}
}

// State returns the current lifecycle position.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Err returns the failure of the last attempt, nil unless the gate is Failed.
func (g *Gate) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// RequestSubmit runs the full-draft validation and, when it passes, arms the
// gate (opens the confirmation prompt). On validation failure the gate stays
// Idle and the errors are returned for the caller to surface as a summary.
// No network traffic happens here in either case.
func (g *Gate) RequestSubmit(validateAll func() form.FieldErrors) (form.FieldErrors, bool) {
	errs := validateAll()
	if len(errs) > 0 {
		return errs, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateIdle {
		return nil, false
	}
	g.state = StateConfirming
	return nil, true
}

// Confirm dispatches the mutation. Valid from Confirming (first attempt) and
// Failed (retry). A Confirm while one is already Submitting is a no-op: this
// is the double-click guard, and the only concurrency control the client
// needs. The call blocks until the mutation settles and reports whether this
// invocation was the one that ran it.
func (g *Gate) Confirm(ctx context.Context) bool {
	g.mu.Lock()
	if g.state != StateConfirming && g.state != StateFailed {
		g.mu.Unlock()
		return false
	}
	g.state = StateSubmitting
	g.lastErr = nil
	g.mu.Unlock()

	err := g.submit(ctx, uuid.NewString())

	g.mu.Lock()
	if err != nil {
		g.state = StateFailed
		g.lastErr = err
	} else {
		g.state = StateSucceeded
	}
	g.mu.Unlock()
	return true
}

// Cancel abandons the submit intent and returns to editing. Valid from
// Confirming (user dismissed the prompt) and Failed (user gave up retrying);
// the draft itself is untouched either way.
func (g *Gate) Cancel() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateConfirming && g.state != StateFailed {
		return false
	}
	g.state = StateIdle
	g.lastErr = nil
	return true
}

package submit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sponsorhub/sponsorhub/internal/form"
)

func noErrors() form.FieldErrors { return form.FieldErrors{} }
func someErrors() form.FieldErrors {
	return form.FieldErrors{"titolo": "Inserisci il titolo del task"}
}

func TestRequestSubmitValidDraft(t *testing.T) {
	g := NewGate(func(ctx context.Context, key string) error { return nil })

	errs, ok := g.RequestSubmit(noErrors)
	if !ok {
		t.Fatal("RequestSubmit refused a valid draft")
	}
	if len(errs) != 0 {
		t.Errorf("errs = %v, want empty", errs)
	}
	if g.State() != StateConfirming {
		t.Errorf("State() = %v, want confirming", g.State())
	}
}

func TestRequestSubmitInvalidDraftStaysIdle(t *testing.T) {
	calls := 0
	g := NewGate(func(ctx context.Context, key string) error {
		calls++
		return nil
	})

	errs, ok := g.RequestSubmit(someErrors)
	if ok {
		t.Fatal("RequestSubmit armed the gate on an invalid draft")
	}
	if len(errs) != 1 {
		t.Errorf("errs = %v, want the validation summary", errs)
	}
	if g.State() != StateIdle {
		t.Errorf("State() = %v, want idle", g.State())
	}
	if calls != 0 {
		t.Errorf("submitter ran %d times during RequestSubmit, want 0", calls)
	}
}

// TestSingleFlight checks that two rapid Confirm calls produce exactly one
// mutation.
func TestSingleFlight(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	g := NewGate(func(ctx context.Context, key string) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	})

	if _, ok := g.RequestSubmit(noErrors); !ok {
		t.Fatal("RequestSubmit failed")
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		g.Confirm(context.Background())
	}()

	<-started // first confirm is now submitting

	// Double-click: this must be a no-op.
	if g.Confirm(context.Background()) {
		t.Error("second Confirm ran while the first was still submitting")
	}

	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("submitter ran %d times, want exactly 1", got)
	}
	if g.State() != StateSucceeded {
		t.Errorf("State() = %v, want succeeded", g.State())
	}
}

func TestConfirmUsesFreshIdempotencyKeys(t *testing.T) {
	var keys []string
	g := NewGate(func(ctx context.Context, key string) error {
		keys = append(keys, key)
		if len(keys) == 1 {
			return errors.New("boom")
		}
		return nil
	})

	g.RequestSubmit(noErrors)
	g.Confirm(context.Background()) // fails
	g.Confirm(context.Background()) // retry succeeds

	if len(keys) != 2 {
		t.Fatalf("submitter ran %d times, want 2", len(keys))
	}
	if keys[0] == "" || keys[1] == "" {
		t.Error("empty idempotency key")
	}
	if keys[0] == keys[1] {
		t.Error("retry reused the previous idempotency key")
	}
}

func TestFailureKeepsReasonAndAllowsRetry(t *testing.T) {
	serverErr := errors.New("Contratto già attivo")
	attempts := 0
	g := NewGate(func(ctx context.Context, key string) error {
		attempts++
		if attempts == 1 {
			return serverErr
		}
		return nil
	})

	g.RequestSubmit(noErrors)
	g.Confirm(context.Background())

	if g.State() != StateFailed {
		t.Fatalf("State() = %v, want failed", g.State())
	}
	if !errors.Is(g.Err(), serverErr) {
		t.Errorf("Err() = %v, want the server error", g.Err())
	}

	// Retry straight from Failed.
	if !g.Confirm(context.Background()) {
		t.Fatal("Confirm refused a retry from Failed")
	}
	if g.State() != StateSucceeded {
		t.Errorf("State() = %v after retry, want succeeded", g.State())
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v after success, want nil", g.Err())
	}
}

func TestCancel(t *testing.T) {
	g := NewGate(func(ctx context.Context, key string) error { return errors.New("no") })

	// Cancel from Idle is a no-op.
	if g.Cancel() {
		t.Error("Cancel() succeeded from Idle")
	}

	g.RequestSubmit(noErrors)
	if !g.Cancel() {
		t.Error("Cancel() refused from Confirming")
	}
	if g.State() != StateIdle {
		t.Errorf("State() = %v after cancel, want idle", g.State())
	}

	// Cancel from Failed returns to editing and clears the reason.
	g.RequestSubmit(noErrors)
	g.Confirm(context.Background())
	if g.State() != StateFailed {
		t.Fatalf("State() = %v, want failed", g.State())
	}
	if !g.Cancel() {
		t.Error("Cancel() refused from Failed")
	}
	if g.Err() != nil {
		t.Errorf("Err() = %v after cancel, want nil", g.Err())
	}
}

func TestConfirmInvalidStates(t *testing.T) {
	g := NewGate(func(ctx context.Context, key string) error { return nil })

	// Idle: nothing to confirm.
	if g.Confirm(context.Background()) {
		t.Error("Confirm() ran from Idle")
	}

	// Succeeded: the flow is over.
	g.RequestSubmit(noErrors)
	g.Confirm(context.Background())
	if g.State() != StateSucceeded {
		t.Fatalf("State() = %v, want succeeded", g.State())
	}
	if g.Confirm(context.Background()) {
		t.Error("Confirm() ran again after success")
	}
}

func TestRequestSubmitWhileArmedIsNoop(t *testing.T) {
	g := NewGate(func(ctx context.Context, key string) error { return nil })
	g.RequestSubmit(noErrors)

	if _, ok := g.RequestSubmit(noErrors); ok {
		t.Error("RequestSubmit re-armed an already-armed gate")
	}
}

func TestNewGatePanicsOnNilSubmitter(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil submitter")
		}
	}()
	NewGate(nil)
}

func TestSuccessNavigateDelay(t *testing.T) {
	// The delay is part of the observed UX contract: long enough to read the
	// notice, short enough not to feel stuck.
	if SuccessNavigateDelay != 1500*time.Millisecond {
		t.Errorf("SuccessNavigateDelay = %v, want 1.5s", SuccessNavigateDelay)
	}
}

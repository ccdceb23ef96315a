package loader

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func fetchValue(v any) Fetch {
	return func(ctx context.Context) (any, error) { return v, nil }
}

func fetchError(err error) Fetch {
	return func(ctx context.Context) (any, error) { return nil, err }
}

func TestLoadAllSucceed(t *testing.T) {
	res := Load(context.Background(),
		Request{Name: "clubs", Fetch: fetchValue([]int{1, 2}), Primary: true},
		Request{Name: "stats", Fetch: fetchValue(42)},
	)

	if res.Err != nil {
		t.Fatalf("Err = %v, want nil", res.Err)
	}
	if got := res.Get("stats"); got != 42 {
		t.Errorf("stats = %v, want 42", got)
	}
	clubs, ok := res.Get("clubs").([]int)
	if !ok || len(clubs) != 2 {
		t.Errorf("clubs = %v", res.Get("clubs"))
	}
}

// TestAuxiliaryDegradesToFallback checks a failing stats endpoint does not
// block the main list from rendering.
func TestAuxiliaryDegradesToFallback(t *testing.T) {
	res := Load(context.Background(),
		Request{Name: "contracts", Fetch: fetchValue([]string{"c1"}), Primary: true},
		Request{Name: "stats", Fetch: fetchError(errors.New("boom")), Fallback: 0},
	)

	if res.Err != nil {
		t.Fatalf("auxiliary failure leaked into Err: %v", res.Err)
	}
	if got := res.Get("stats"); got != 0 {
		t.Errorf("stats = %v, want fallback 0", got)
	}
	if res.Get("contracts") == nil {
		t.Error("primary value lost")
	}
}

func TestPrimaryFailureFailsLoad(t *testing.T) {
	primaryErr := errors.New("not found")
	res := Load(context.Background(),
		Request{Name: "contract", Fetch: fetchError(primaryErr), Primary: true, Fallback: nil},
		Request{Name: "checklist", Fetch: fetchValue([]string{})},
	)

	if !errors.Is(res.Err, primaryErr) {
		t.Errorf("Err = %v, want the primary failure", res.Err)
	}
	// Auxiliary data still settles; the caller just renders the error state.
	if res.Get("checklist") == nil {
		t.Error("auxiliary value lost on primary failure")
	}
}

// TestLoadRunsInParallel checks the fetches overlap rather than running
// sequentially.
func TestLoadRunsInParallel(t *testing.T) {
	var inFlight, maxInFlight int32

	slow := func(ctx context.Context) (any, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil, nil
	}

	start := time.Now()
	Load(context.Background(),
		Request{Name: "a", Fetch: slow, Primary: true},
		Request{Name: "b", Fetch: slow},
		Request{Name: "c", Fetch: slow},
	)
	elapsed := time.Since(start)

	if atomic.LoadInt32(&maxInFlight) < 2 {
		t.Errorf("max in-flight = %d, want overlap", maxInFlight)
	}
	if elapsed > 200*time.Millisecond {
		t.Errorf("Load took %v, fetches appear serialized", elapsed)
	}
}

// TestLoadWaitsForAllSettled checks slow auxiliaries are not abandoned.
func TestLoadWaitsForAllSettled(t *testing.T) {
	var settled int32
	slowOK := func(ctx context.Context) (any, error) {
		time.Sleep(40 * time.Millisecond)
		atomic.AddInt32(&settled, 1)
		return "ok", nil
	}

	res := Load(context.Background(),
		Request{Name: "fast", Fetch: fetchValue(1), Primary: true},
		Request{Name: "slow", Fetch: slowOK},
	)

	if atomic.LoadInt32(&settled) != 1 {
		t.Error("Load returned before every fetch settled")
	}
	if res.Get("slow") != "ok" {
		t.Errorf("slow = %v, want ok", res.Get("slow"))
	}
}

func TestLoadHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Load(ctx,
		Request{
			Name: "list",
			Fetch: func(ctx context.Context) (any, error) {
				return nil, ctx.Err()
			},
			Primary:  true,
			Fallback: []string{},
		},
	)

	if res.Err == nil {
		t.Error("expected the cancellation to surface as the primary error")
	}
}

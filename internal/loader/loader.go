// Package loader implements the fetch-on-mount pattern used by list and
// detail screens: several independent GET requests issued in parallel, one
// aggregate "all settled" completion, and per-request fallbacks so that a
// failing auxiliary endpoint (stats, counters) degrades to an empty value
// instead of blanking the whole page.
package loader

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sponsorhub/sponsorhub/internal/logging"
)

// Fetch loads one resource. It honors ctx cancellation like any network call.
type Fetch func(ctx context.Context) (any, error)

// Request names one resource a screen needs on mount.
type Request struct {
	// Name keys the fetched value in the result set.
	Name string
	// Fetch performs the actual call.
	Fetch Fetch
	// Fallback is the value used when a non-primary fetch fails.
	Fallback any
	// Primary marks the request whose failure fails the whole screen
	// (rendered as the error/not-found state). Auxiliary requests degrade
	// silently to their fallback.
	Primary bool
}

// Result is the settled outcome of a Load.
type Result struct {
	// Data maps request names to fetched values (or fallbacks).
	Data map[string]any
	// Err is the primary request's failure, nil when the screen can render.
	Err error
}

// Get returns the value for a request name.
func (r Result) Get(name string) any { return r.Data[name] }

// Load issues every request in parallel and blocks until all of them have
// settled. There is no ordering between the fetches and no partial-loading
// signal: callers stay in their loading state until Load returns.
func Load(ctx context.Context, reqs ...Request) Result {
	type settled struct {
		value any
		err   error
	}

	results := make([]settled, len(reqs))
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			value, err := req.Fetch(ctx)
			results[i] = settled{value: value, err: err}
		}(i, req)
	}
	wg.Wait()

	out := Result{Data: make(map[string]any, len(reqs))}
	for i, req := range reqs {
		res := results[i]
		if res.err == nil {
			out.Data[req.Name] = res.value
			continue
		}

		if req.Primary {
			logging.Warn("primary resource load failed",
				zap.String("resource", req.Name),
				zap.Error(res.err),
			)
			if out.Err == nil {
				out.Err = res.err
			}
			out.Data[req.Name] = req.Fallback
			continue
		}

		// Auxiliary failure: degrade to the fallback, keep the page alive.
		logging.Debug("auxiliary resource degraded to fallback",
			zap.String("resource", req.Name),
			zap.Error(res.err),
		)
		out.Data[req.Name] = req.Fallback
	}

	return out
}

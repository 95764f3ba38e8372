package erp

import (
	"context"

	"github.com/erp/bcadapter/internal/domain/shared"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency keeps one request's fan-out well below the
// connection ceiling of the Business Central transport.
const defaultConcurrency = 8

// gather calls fn for every index in [0, n) with at most limit calls in
// flight and returns the results addressed by index. The first error
// cancels the context handed to the remaining calls and is returned.
func gather[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := fn(gctx, i)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// step is one part of a composite write
type step func(ctx context.Context) shared.Outcomes

// runSteps runs independent write steps concurrently and joins their outcomes
// in step order. Steps never cancel each other.
func runSteps(ctx context.Context, steps ...step) shared.Outcomes {
	parts := make([]shared.Outcomes, len(steps))
	var g errgroup.Group
	for i, s := range steps {
		g.Go(func() error {
			parts[i] = s(ctx)
			return nil
		})
	}
	_ = g.Wait()

	var out shared.Outcomes
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Package fanout runs a side-effecting function across a slice of items with
// a bounded number of worker goroutines. The coordinator uses it to dispatch
// transition hooks; hooks produce no values, so only the per-item errors come
// back, index-aligned with the input.
package fanout

import (
	"context"
	"sync"
)

// Each executes fn for every item using at most maxWorkers concurrent
// goroutines and returns the per-item errors in input order.
//
// A goroutine still waiting for a worker slot when ctx is canceled records
// ctx.Err() without calling fn. Goroutines already running see the
// cancellation only through ctx inside fn. Each blocks until every goroutine
// finishes; a nil or empty items yields a non-nil empty slice.
//
// maxWorkers must be >= 1.
func Each[T any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) error) []error {
	errs := make([]error, len(items))
	if len(items) == 0 {
		return errs
	}

	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			errs[idx] = fn(ctx, it)
		}(i, item)
	}

	wg.Wait()
	return errs
}

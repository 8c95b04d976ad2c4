package utils

import (
	"context"
	"errors"
	"sync"
)

// ErrAllEmpty is returned by FirstNonEmpty when no job produced anything.
var ErrAllEmpty = errors.New("no job produced a result")

// Job produces a batch of results.
type Job[T any] func(ctx context.Context) ([]T, error)

// FirstNonEmpty runs every job concurrently and returns the first non-empty,
// error-free batch along with the index of the job that produced it. The
// shared context is cancelled as soon as a winner is found, and losers'
// results are discarded.
func FirstNonEmpty[T any](ctx context.Context, jobs []Job[T]) ([]T, int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		index int
		items []T
		err   error
	}

	results := make(chan outcome, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		go func(i int, job Job[T]) {
			defer wg.Done()
			items, err := job(ctx)
			results <- outcome{index: i, items: items, err: err}
		}(i, job)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var errs []error
	for r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		if len(r.items) > 0 {
			return r.items, r.index, nil
		}
	}

	if len(errs) > 0 {
		return nil, -1, errors.Join(append([]error{ErrAllEmpty}, errs...)...)
	}
	return nil, -1, ErrAllEmpty
}

package runner

import (
	"context"
	"fmt"
	"sync"

	"digital.vasic.expect/pkg/report"
)

// parallelResult pairs a run with its original index so runs can
// be returned in submission order.
type parallelResult struct {
	index int
	run   *report.Run
	err   error
}

// runParallel executes suites concurrently with a semaphore
// limiting maxConcurrency goroutines. Suites that did not run are
// left out of the result and the first error is returned.
func runParallel(
	ctx context.Context,
	r *DefaultRunner,
	names []string,
	maxConcurrency int,
) ([]*report.Run, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	sem := make(chan struct{}, maxConcurrency)
	resultsCh := make(chan parallelResult, len(names))

	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				resultsCh <- parallelResult{index: idx, err: ctx.Err()}
				return
			}

			run, err := r.Run(ctx, name)
			if err != nil {
				err = fmt.Errorf("suite %s: %w", name, err)
			}
			resultsCh <- parallelResult{index: idx, run: run, err: err}
		}(i, name)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	ordered := make([]*report.Run, len(names))
	var firstErr error

	for pr := range resultsCh {
		if pr.err != nil && firstErr == nil {
			firstErr = pr.err
		}
		ordered[pr.index] = pr.run
	}

	runs := make([]*report.Run, 0, len(names))
	for _, run := range ordered {
		if run != nil {
			runs = append(runs, run)
		}
	}
	return runs, firstErr
}

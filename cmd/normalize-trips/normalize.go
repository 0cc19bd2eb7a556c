package main

import (
	"context"
	"sync"
	"sync/atomic"
)

// normalizer is the part of the itinerary store this tool needs.
type normalizer interface {
	Normalize(ctx context.Context, tripID string) (int, error)
}

type report struct {
	Trips        int
	ChangedTrips int64
	Rewritten    int64
	Failures     map[string]error
}

// normalizeAll runs Normalize over ids with at most concurrency trips in flight. Each trip is its
// own transaction, so one failure does not stop the others.
func normalizeAll(ctx context.Context, n normalizer, ids []string, concurrency int) report {
	concurrency = max(concurrency, 1)
	r := report{Trips: len(ids), Failures: map[string]error{}}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		changed   atomic.Int64
		rewritten atomic.Int64
	)
	work := make(chan string)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range work {
				count, err := n.Normalize(ctx, id)
				if err != nil {
					mu.Lock()
					r.Failures[id] = err
					mu.Unlock()
					continue
				}
				if count > 0 {
					changed.Add(1)
					rewritten.Add(int64(count))
				}
			}
		}()
	}

	for _, id := range ids {
		select {
		case work <- id:
		case <-ctx.Done():
			mu.Lock()
			r.Failures[id] = ctx.Err()
			mu.Unlock()
		}
	}
	close(work)
	wg.Wait()

	r.ChangedTrips = changed.Load()
	r.Rewritten = rewritten.Load()
	return r
}

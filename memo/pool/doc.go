// Package pool runs memoized work on a fixed set of workers.
//
// A memo.Cache is never shared between goroutines, so the pool gives every
// worker its own. Messages are routed by an xxhash of their PartitionKey:
// messages with equal keys always meet the same cache, which is what makes
// their results reusable.
//
// The pool never sweeps on its own. Call Evict on whatever cadence suits the
// workload, typically once per top-level unit of work; the sweep is queued
// behind earlier messages and runs on each worker's goroutine.
//
// Example:
//
//	p := pool.New(ctx, pool.NewConfig(16, 4), func(ctx context.Context, c *memo.Cache, j Job) {
//	    j.Reply <- memo.Memoized(c, memo.Exactly(j.N), square)
//	})
//	defer p.Close()
package pool

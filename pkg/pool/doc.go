// Package pool provides a bounded worker pool with typed task handles.
//
// Work is submitted as a function and a Handle is returned immediately. The
// pool gives no guarantee about execution order; callers that need ordered
// results keep their handles in submission order and await them in that
// order with AwaitAll.
//
// Example usage:
//
//	p := pool.New(pool.DefaultConfig(), logger)
//	h, err := pool.Submit(ctx, p, func(ctx context.Context) (int, error) {
//		return 42, nil
//	})
//	p.Shutdown()
//	results, err := pool.AwaitAll(ctx, []*pool.Handle[int]{h})
//	p.Wait()
//
// The pool:
//   - Runs a fixed number of workers (default 10)
//   - Accepts work until Shutdown, then drains what was already queued
//   - Recovers panics inside a task and reports them on that task's handle
//   - Never lets one task's failure affect another task or the pool
package pool

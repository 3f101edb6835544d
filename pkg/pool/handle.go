package pool

import "context"

// Handle represents a submitted task. It moves from pending to exactly one
// terminal state: completed with a value, or failed with an error.
type Handle[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Done returns a channel that is closed once the task is terminal.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the task is terminal and returns its value and error.
// If ctx ends first, Wait returns a *WaitError and the task keeps running.
func (h *Handle[T]) Wait(ctx context.Context) (T, error) {
	if err := h.await(ctx); err != nil {
		var zero T
		return zero, err
	}
	return h.value, h.err
}

func (h *Handle[T]) await(ctx context.Context) error {
	// A finished task wins over a finished context.
	select {
	case <-h.done:
		return nil
	default:
	}

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return &WaitError{Err: ctx.Err()}
	}
}

// Result is the terminal outcome of one task.
type Result[T any] struct {
	Value T
	Err   error
}

// AwaitAll waits for every handle in the order given and returns their
// outcomes in that same order, regardless of the order the tasks finished in.
//
// Task failures are reported per result. The returned error is non-nil only
// when a wait was interrupted, in which case no results are returned.
func AwaitAll[T any](ctx context.Context, handles []*Handle[T]) ([]Result[T], error) {
	results := make([]Result[T], len(handles))
	for i, h := range handles {
		if err := h.await(ctx); err != nil {
			return nil, err
		}
		results[i] = Result[T]{Value: h.value, Err: h.err}
	}
	return results, nil
}

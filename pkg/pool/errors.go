package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolClosed is returned by Submit after Shutdown has been called.
	ErrPoolClosed = errors.New("pool is shut down")
)

// PanicError carries a panic recovered from a task.
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// WaitError is returned when waiting on a handle is interrupted before the
// task reached a terminal state.
type WaitError struct {
	Err error
}

// Error implements the error interface.
func (e *WaitError) Error() string {
	return fmt.Sprintf("wait interrupted: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *WaitError) Unwrap() error {
	return e.Err
}

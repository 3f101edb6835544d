// Package detail provides sources for per-city detail records.
package detail

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no detail record exists for a city.
	// This is an expected outcome; callers default the population to 0.
	ErrNotFound = errors.New("detail record not found")
)

// LookupError is an I/O-level failure while reading a detail record.
// It is distinct from ErrNotFound and never matches it.
type LookupError struct {
	Province string
	City     string
	Err      error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s/%s: %v", e.Province, e.City, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *LookupError) Unwrap() error {
	return e.Err
}

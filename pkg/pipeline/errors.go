package pipeline

import (
	"errors"
	"fmt"

	"github.com/Sternrassler/population-report/pkg/population"
)

var (
	// ErrReferenceUnavailable is returned when the province or city list could
	// not be fetched or was empty.
	ErrReferenceUnavailable = errors.New("reference data unavailable")

	// ErrReportSink wraps a failure of the report sink. The aggregation that
	// was handed to the sink is still valid.
	ErrReportSink = errors.New("report sink failed")
)

// AbortError is returned when a run stops before producing a report.
type AbortError struct {
	// State is the state the run was in when it aborted.
	State State
	Err   error
}

// Error implements the error interface.
func (e *AbortError) Error() string {
	return fmt.Sprintf("run aborted while %s: %v", e.State, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *AbortError) Unwrap() error {
	return e.Err
}

// LookupFailure records a city that was dropped because its detail lookup
// failed.
type LookupFailure struct {
	Pair population.Pair
	Err  error
}

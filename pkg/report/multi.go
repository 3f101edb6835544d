package report

import (
	"context"
	"errors"

	"github.com/Sternrassler/population-report/pkg/population"
)

// Sink consumes a finished report.
type Sink interface {
	Accept(ctx context.Context, records []population.PopulationRecord) error
}

// MultiSink hands the same records to every sink in order. All sinks run even
// if an earlier one fails; the failures are joined.
type MultiSink []Sink

// Accept implements Sink.
func (m MultiSink) Accept(ctx context.Context, records []population.PopulationRecord) error {
	var errs []error
	for _, s := range m {
		if err := s.Accept(ctx, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

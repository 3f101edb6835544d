package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/Sternrassler/population-report/pkg/detail"
	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/rs/zerolog"
)

// FetchTask looks up the population of one joined city.
//
// A task owns its inputs by value and writes only to its own Failure field, so
// tasks share no mutable state.
type FetchTask struct {
	Pair    population.Pair
	Source  DetailRecordSource
	Logger  zerolog.Logger
	Timeout time.Duration

	// Failure is set when the lookup failed at the I/O layer. Read it only
	// after the task's handle is done.
	Failure *LookupFailure
}

// Run performs the lookup. It never returns an error: a failed lookup yields a
// nil record, a warning, and Failure.
func (t *FetchTask) Run(ctx context.Context) (*population.PopulationRecord, error) {
	province, city := t.Pair.Province.Name, t.Pair.City.Name

	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	record, err := t.Source.Lookup(ctx, province, city)
	switch {
	case errors.Is(err, detail.ErrNotFound):
		t.Logger.Debug().
			Str("province", province).
			Str("city", city).
			Msg("No detail record, population defaults to 0")
		record = nil
	case err != nil:
		t.Logger.Warn().
			Err(err).
			Str("province", province).
			Str("city", city).
			Msg("Failed to load detail record for city")
		t.Failure = &LookupFailure{Pair: t.Pair, Err: err}
		return nil, nil
	}

	return &population.PopulationRecord{
		Province:   province,
		City:       city,
		Population: record.PopulationOrZero(),
	}, nil
}

package pipeline

import (
	"context"

	"github.com/Sternrassler/population-report/pkg/pool"
	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/rs/zerolog"
)

// Collect waits for every handle in submission order and returns the non-nil
// records in that order. A task that failed is skipped and logged through the
// logger carried by ctx. Collect returns an error only if a wait is
// interrupted, in which case no records are returned.
func Collect(ctx context.Context, handles []*pool.Handle[*population.PopulationRecord]) ([]population.PopulationRecord, error) {
	results, err := pool.AwaitAll(ctx, handles)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	records := make([]population.PopulationRecord, 0, len(results))
	for i, result := range results {
		if result.Err != nil {
			logger.Warn().
				Err(result.Err).
				Int("task", i).
				Msg("Population task failed")
			continue
		}
		if result.Value == nil {
			continue
		}
		records = append(records, *result.Value)
	}

	return records, nil
}

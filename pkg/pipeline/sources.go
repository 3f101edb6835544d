//go:generate mockgen -source=sources.go -destination=mocks/mock_sources.go -package=mocks

package pipeline

import (
	"context"

	"github.com/Sternrassler/population-report/pkg/population"
)

// ReferenceDataSource supplies the province and city lists.
// An empty list is treated as unavailable, not as "none exist".
type ReferenceDataSource interface {
	FetchProvinces(ctx context.Context) ([]population.Province, error)
	FetchCities(ctx context.Context) ([]population.City, error)
}

// DetailRecordSource supplies the detail record for a city.
//
// Lookup returns an error matching detail.ErrNotFound when no record exists.
// Any other error is treated as an I/O failure.
type DetailRecordSource interface {
	Lookup(ctx context.Context, province, city string) (*population.DetailRecord, error)
}

// ReportSink consumes the final ordered records once per successful run.
type ReportSink interface {
	Accept(ctx context.Context, records []population.PopulationRecord) error
}

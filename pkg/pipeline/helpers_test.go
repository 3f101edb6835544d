package pipeline

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/rs/zerolog"
)

func ptr(v float64) *float64 { return &v }

// staticRefs serves fixed reference lists.
type staticRefs struct {
	provinces   []population.Province
	cities      []population.City
	provinceErr error
	cityErr     error
}

func (s staticRefs) FetchProvinces(context.Context) ([]population.Province, error) {
	return s.provinces, s.provinceErr
}

func (s staticRefs) FetchCities(context.Context) ([]population.City, error) {
	return s.cities, s.cityErr
}

// lookupFunc adapts a function to DetailRecordSource.
type lookupFunc func(ctx context.Context, province, city string) (*population.DetailRecord, error)

func (f lookupFunc) Lookup(ctx context.Context, province, city string) (*population.DetailRecord, error) {
	return f(ctx, province, city)
}

// recordingSink keeps every accepted report.
type recordingSink struct {
	mu      sync.Mutex
	reports [][]population.PopulationRecord
	err     error
}

func (s *recordingSink) Accept(_ context.Context, records []population.PopulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, records)
	return s.err
}

// recordingObserver keeps phase names in the order they finished.
type recordingObserver struct {
	mu     sync.Mutex
	phases []State
	final  State
}

func (o *recordingObserver) PhaseFinished(state State, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phases = append(o.phases, state)
}

func (o *recordingObserver) RunFinished(final State, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.final = final
}

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testLogger(out *syncBuffer) zerolog.Logger {
	return zerolog.New(out).Level(zerolog.DebugLevel)
}

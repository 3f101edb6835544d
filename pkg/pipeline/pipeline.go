package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Sternrassler/population-report/pkg/pool"
	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// State is a step of a pipeline run.
type State string

const (
	// StateIdle is the state before the first run.
	StateIdle State = "idle"

	// StateFetchingReference fetches provinces and cities concurrently.
	StateFetchingReference State = "fetching_reference"

	// StateJoining resolves cities to provinces.
	StateJoining State = "joining"

	// StateFetchingPopulation submits one lookup per joined city.
	StateFetchingPopulation State = "fetching_population"

	// StateAggregating waits for all lookups in submission order.
	StateAggregating State = "aggregating"

	// StateDone hands the records to the report sink.
	StateDone State = "done"

	// StateAborted means no report was produced.
	StateAborted State = "aborted"
)

// Config holds pipeline configuration.
type Config struct {
	// Pool configures the worker pool used for detail lookups.
	Pool pool.Config

	// LookupTimeout bounds each detail lookup through its context.
	// Zero means no timeout. Sources that ignore their context are not bounded.
	LookupTimeout time.Duration
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Pool: pool.DefaultConfig(),
	}
}

// Report is the outcome of a completed run.
type Report struct {
	// Records are the population records in city input order.
	Records []population.PopulationRecord

	// Failures are the cities dropped because their lookup failed.
	Failures []LookupFailure

	// Unresolved are the cities dropped because their province is unknown.
	Unresolved []population.City
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used by the pipeline and its tasks.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithObserver sets the timing observer.
func WithObserver(observer Observer) Option {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

// Pipeline orchestrates population report runs.
type Pipeline struct {
	config   Config
	refs     ReferenceDataSource
	details  DetailRecordSource
	sink     ReportSink
	logger   zerolog.Logger
	observer Observer

	mu    sync.Mutex
	state State
}

// New creates a pipeline. sink may be nil, in which case the caller consumes
// the returned Report directly.
func New(cfg Config, refs ReferenceDataSource, details DetailRecordSource, sink ReportSink, opts ...Option) (*Pipeline, error) {
	if refs == nil {
		return nil, fmt.Errorf("reference data source is required")
	}
	if details == nil {
		return nil, fmt.Errorf("detail record source is required")
	}

	p := &Pipeline{
		config:   cfg,
		refs:     refs,
		details:  details,
		sink:     sink,
		logger:   log.With().Str("component", "pipeline").Logger(),
		observer: NopObserver{},
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// State returns the state the most recent run reached.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(state State) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()

	p.logger.Debug().Str("state", string(state)).Msg("Pipeline state changed")
}

// Run executes one full run. On abort it returns a nil Report and an
// *AbortError. If only the report sink fails, Run returns the complete Report
// together with an error wrapping ErrReportSink.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	ctx = p.logger.WithContext(ctx)

	report, err := p.run(ctx)

	p.observer.RunFinished(p.State(), time.Since(start))
	return report, err
}

func (p *Pipeline) run(ctx context.Context) (*Report, error) {
	// Fetching reference data
	p.setState(StateFetchingReference)
	phaseStart := time.Now()
	provinces, cities, err := p.fetchReference(ctx)
	p.observer.PhaseFinished(StateFetchingReference, time.Since(phaseStart))
	if err != nil {
		return nil, p.abort(StateFetchingReference, err)
	}

	// Joining
	p.setState(StateJoining)
	phaseStart = time.Now()
	joined := population.Join(provinces, cities)
	p.observer.PhaseFinished(StateJoining, time.Since(phaseStart))

	p.logger.Info().
		Int("provinces", len(provinces)).
		Int("cities", len(cities)).
		Int("resolved", len(joined.Pairs)).
		Int("unresolved", len(joined.Unresolved)).
		Msg("Reference data joined")

	// Fetching population
	p.setState(StateFetchingPopulation)
	phaseStart = time.Now()
	workers := pool.New(p.config.Pool, p.logger)
	tasks, handles, err := p.fanOut(ctx, workers, joined.Pairs)
	workers.Shutdown()
	p.observer.PhaseFinished(StateFetchingPopulation, time.Since(phaseStart))
	if err != nil {
		return nil, p.abort(StateFetchingPopulation, err)
	}

	// Aggregating
	p.setState(StateAggregating)
	phaseStart = time.Now()
	records, err := Collect(ctx, handles)
	if err != nil {
		p.observer.PhaseFinished(StateAggregating, time.Since(phaseStart))
		return nil, p.abort(StateAggregating, err)
	}
	workers.Wait()
	p.observer.PhaseFinished(StateAggregating, time.Since(phaseStart))

	// Tasks that saw the cancelled context failed like I/O errors; their
	// records are missing, so the report would be truncated.
	if err := ctx.Err(); err != nil {
		return nil, p.abort(StateAggregating, &pool.WaitError{Err: err})
	}

	report := &Report{
		Records:    records,
		Failures:   failures(ctx, tasks, handles),
		Unresolved: joined.Unresolved,
	}

	// Done
	p.setState(StateDone)
	p.logger.Info().
		Int("records", len(report.Records)).
		Int("failed_lookups", len(report.Failures)).
		Msg("Population aggregated")

	if p.sink == nil {
		return report, nil
	}

	phaseStart = time.Now()
	err = p.sink.Accept(ctx, report.Records)
	p.observer.PhaseFinished(StateDone, time.Since(phaseStart))
	if err != nil {
		p.logger.Error().Err(err).Msg("Report sink failed")
		return report, fmt.Errorf("%w: %w", ErrReportSink, err)
	}

	return report, nil
}

// fetchReference fetches provinces and cities concurrently and waits for both.
func (p *Pipeline) fetchReference(ctx context.Context) ([]population.Province, []population.City, error) {
	g, gctx := errgroup.WithContext(ctx)

	var provinces []population.Province
	var cities []population.City

	g.Go(func() error {
		list, err := p.refs.FetchProvinces(gctx)
		if err != nil {
			return fmt.Errorf("%w: could not load province data: %w", ErrReferenceUnavailable, err)
		}
		if len(list) == 0 {
			return fmt.Errorf("%w: could not load province data: empty list", ErrReferenceUnavailable)
		}
		provinces = list
		return nil
	})

	g.Go(func() error {
		list, err := p.refs.FetchCities(gctx)
		if err != nil {
			return fmt.Errorf("%w: could not load city data: %w", ErrReferenceUnavailable, err)
		}
		if len(list) == 0 {
			return fmt.Errorf("%w: could not load city data: empty list", ErrReferenceUnavailable)
		}
		cities = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return provinces, cities, nil
}

// fanOut submits one FetchTask per pair. Each task gets its own copy of the
// pair.
func (p *Pipeline) fanOut(ctx context.Context, workers *pool.Pool, pairs []population.Pair) ([]*FetchTask, []*pool.Handle[*population.PopulationRecord], error) {
	tasks := make([]*FetchTask, 0, len(pairs))
	handles := make([]*pool.Handle[*population.PopulationRecord], 0, len(pairs))

	for _, pair := range pairs {
		task := &FetchTask{
			Pair:    pair,
			Source:  p.details,
			Logger:  p.logger,
			Timeout: p.config.LookupTimeout,
		}

		handle, err := pool.Submit(ctx, workers, task.Run)
		if err != nil {
			return nil, nil, fmt.Errorf("submit lookup for %s: %w", pair.City.Name, err)
		}

		tasks = append(tasks, task)
		handles = append(handles, handle)
	}

	p.logger.Debug().
		Int("tasks", len(handles)).
		Int("workers", workers.Workers()).
		Msg("Population lookups submitted")

	return tasks, handles, nil
}

// failures gathers lookup failures in submission order. Every handle must be
// done.
func failures(ctx context.Context, tasks []*FetchTask, handles []*pool.Handle[*population.PopulationRecord]) []LookupFailure {
	var out []LookupFailure
	for i, task := range tasks {
		if _, err := handles[i].Wait(ctx); err != nil {
			out = append(out, LookupFailure{Pair: task.Pair, Err: err})
			continue
		}
		if task.Failure != nil {
			out = append(out, *task.Failure)
		}
	}
	return out
}

func (p *Pipeline) abort(state State, err error) error {
	p.setState(StateAborted)

	var waitErr *pool.WaitError
	switch {
	case errors.Is(err, ErrReferenceUnavailable):
		p.logger.Error().Err(err).Str("state", string(state)).Msg("Reference data unavailable, aborting run")
	case errors.As(err, &waitErr):
		p.logger.Error().Err(err).Str("state", string(state)).Msg("Wait interrupted, aborting run")
	default:
		p.logger.Error().Err(err).Str("state", string(state)).Msg("Aborting run")
	}

	return &AbortError{State: state, Err: err}
}

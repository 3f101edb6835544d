package pipeline

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for pipeline runs.
var (
	phaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "population_phase_duration_seconds",
		Help:    "Duration of each pipeline phase in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"phase"})

	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "population_runs_total",
		Help: "Total pipeline runs by final state",
	}, []string{"outcome"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "population_run_duration_seconds",
		Help:    "Duration of whole pipeline runs in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})
)

// Observer receives timing for each finished phase and for the whole run.
// Implementations must be safe to call from the goroutine running Run.
type Observer interface {
	PhaseFinished(state State, elapsed time.Duration)
	RunFinished(final State, elapsed time.Duration)
}

// NopObserver discards all timings.
type NopObserver struct{}

// PhaseFinished implements Observer.
func (NopObserver) PhaseFinished(State, time.Duration) {}

// RunFinished implements Observer.
func (NopObserver) RunFinished(State, time.Duration) {}

// MetricsObserver records timings as Prometheus metrics and debug logs.
type MetricsObserver struct {
	Logger zerolog.Logger
}

// PhaseFinished implements Observer.
func (o MetricsObserver) PhaseFinished(state State, elapsed time.Duration) {
	phaseDuration.WithLabelValues(string(state)).Observe(elapsed.Seconds())
	o.Logger.Debug().
		Str("phase", string(state)).
		Dur("duration", elapsed).
		Msg("Phase finished")
}

// RunFinished implements Observer.
func (o MetricsObserver) RunFinished(final State, elapsed time.Duration) {
	runsTotal.WithLabelValues(string(final)).Inc()
	runDuration.Observe(elapsed.Seconds())
	o.Logger.Info().
		Str("state", string(final)).
		Dur("duration", elapsed).
		Msg("Run finished")
}

// FormatElapsed renders d as H:MM:SS.mmm.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	millis := d / time.Millisecond
	return fmt.Sprintf("%d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

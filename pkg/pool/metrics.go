package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TasksTotal counts finished tasks by outcome ("ok", "error", "panic").
	TasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "population_pool_tasks_total",
			Help: "Total number of pool tasks by outcome",
		},
		[]string{"outcome"},
	)

	// QueueDepth tracks tasks submitted but not yet picked up by a worker.
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "population_pool_queue_depth",
			Help: "Number of tasks waiting for a worker",
		},
	)

	// TaskDuration observes how long each task ran.
	TaskDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "population_pool_task_duration_seconds",
			Help:    "Pool task run time in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)
)

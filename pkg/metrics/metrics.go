// Package metrics documents the Prometheus metrics exported by the population
// report and serves them over HTTP. Metrics are defined in their owning
// packages (pool, pipeline, client, cache, ratelimit) and registered via
// promauto, so this package only references them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer every population metric is registered with.
var Registry = prometheus.DefaultRegisterer

// Names lists every metric exported by the population report.
var Names = []string{
	"population_pool_tasks_total",
	"population_pool_queue_depth",
	"population_pool_task_duration_seconds",
	"population_phase_duration_seconds",
	"population_runs_total",
	"population_run_duration_seconds",
	"population_client_requests_total",
	"population_client_request_duration_seconds",
	"population_client_errors_total",
	"population_client_retries_total",
	"population_client_retry_backoff_seconds",
	"population_client_retry_exhausted_total",
	"population_cache_hits_total",
	"population_cache_misses_total",
	"population_cache_size_bytes",
	"population_cache_not_modified_total",
	"population_cache_errors_total",
	"population_ratelimit_remaining",
	"population_ratelimit_blocks_total",
	"population_ratelimit_throttles_total",
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Pool Metrics (pkg/pool):
//   - population_pool_tasks_total{outcome} (Counter): Finished tasks by outcome (ok, error, panic)
//   - population_pool_queue_depth (Gauge): Tasks submitted but not yet running
//   - population_pool_task_duration_seconds (Histogram): Task run time
//
// Pipeline Metrics (pkg/pipeline):
//   - population_phase_duration_seconds{phase} (Histogram): Duration per pipeline phase
//   - population_runs_total{outcome} (Counter): Runs by final state (done, aborted)
//   - population_run_duration_seconds (Histogram): Whole run duration
//
// Request Metrics (pkg/client):
//   - population_client_requests_total{endpoint, status} (Counter): Requests by endpoint and HTTP status
//   - population_client_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - population_client_errors_total{class} (Counter): Errors by class (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - population_client_retries_total{error_class} (Counter): Retry attempts by error class
//   - population_client_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - population_client_retry_exhausted_total{error_class} (Counter): Requests that exhausted their retries
//
// Cache Metrics (pkg/cache):
//   - population_cache_hits_total{freshness} (Counter): Cache hits, fresh or stale
//   - population_cache_misses_total (Counter): Cache misses
//   - population_cache_size_bytes (Gauge): Bytes written to the cache
//   - population_cache_not_modified_total (Counter): 304 revalidations
//   - population_cache_errors_total{operation} (Counter): Cache operation errors
//
// Rate Limit Metrics (pkg/ratelimit):
//   - population_ratelimit_remaining (Gauge): Requests remaining in the current window
//   - population_ratelimit_blocks_total (Counter): Requests blocked at the critical threshold
//   - population_ratelimit_throttles_total (Counter): Requests delayed at the warning threshold
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(population_cache_hits_total[5m])) /
//   (sum(rate(population_cache_hits_total[5m])) + sum(rate(population_cache_misses_total[5m])))
//
//   # Failed detail lookups
//   rate(population_pool_tasks_total{outcome!="ok"}[5m])
//
//   # P95 lookup phase latency
//   histogram_quantile(0.95, rate(population_phase_duration_seconds_bucket{phase="fetching_population"}[5m]))
//
//   # Aborted runs
//   increase(population_runs_total{outcome="aborted"}[1h])

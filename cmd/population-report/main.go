// Command population-report builds a province/city population table from a
// reference API and per-city detail records.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sternrassler/population-report/internal/config"
	"github.com/Sternrassler/population-report/pkg/client"
	"github.com/Sternrassler/population-report/pkg/detail"
	"github.com/Sternrassler/population-report/pkg/logging"
	"github.com/Sternrassler/population-report/pkg/metrics"
	"github.com/Sternrassler/population-report/pkg/pipeline"
	"github.com/Sternrassler/population-report/pkg/pool"
	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/Sternrassler/population-report/pkg/report"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitAborted    = 1
	ExitConfig     = 2
	ExitSinkFailed = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.ParseConfig("population-report", args, stderr)
	if errors.Is(err, config.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "population-report: %v\n", err)
		return ExitConfig
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
		Output: stderr,
	})
	logger := logging.NewLogger(logging.ComponentCLI)

	if cfg.MetricsAddr != "" {
		srv, ln, err := startMetricsServer(cfg.MetricsAddr, logger)
		if err != nil {
			logger.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("Failed to start metrics server")
			return ExitConfig
		}
		logger.Info().Str("addr", ln.Addr().String()).Msg("Serving metrics")
		defer shutdownServer(srv)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
			return ExitConfig
		}
		logger.Debug().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
	}

	clientCfg := client.DefaultConfig(cfg.APIURL, cfg.UserAgent)
	clientCfg.Redis = redisClient
	apiClient, err := client.New(clientCfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create reference API client")
		return ExitConfig
	}

	var details pipeline.DetailRecordSource
	if cfg.DetailsRedis {
		details = detail.NewRedisSource(redisClient)
	} else {
		details = detail.NewFileSource(cfg.DetailsDir)
	}

	sink, closeSinks, err := buildSinks(ctx, cfg, stdout)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up report output")
		return ExitConfig
	}
	defer closeSinks()

	pipelineCfg := pipeline.DefaultConfig()
	pipelineCfg.Pool = pool.Config{Workers: cfg.Workers, QueueSize: cfg.Workers * 40}
	pipelineCfg.LookupTimeout = cfg.LookupTimeout

	observer := &elapsedObserver{next: pipeline.MetricsObserver{Logger: logger}}
	p, err := pipeline.New(pipelineCfg, client.NewReferenceSource(apiClient), details, sink,
		pipeline.WithLogger(logging.NewLogger(logging.ComponentPipeline)),
		pipeline.WithObserver(observer),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create pipeline")
		return ExitConfig
	}

	spin := startSpinner(cfg.Quiet, stderr)
	result, err := p.Run(ctx)
	spin.Stop()

	if result != nil && len(result.Unresolved) > 0 {
		keys := population.JoinResult{Unresolved: result.Unresolved}.UnresolvedKeys()
		logger.Debug().
			Int("cities", len(result.Unresolved)).
			Strs("province_keys", keys).
			Msg("Cities skipped for unknown province")
	}

	var abortErr *pipeline.AbortError
	switch {
	case errors.As(err, &abortErr):
		fmt.Fprintf(stderr, "population-report: %v\n", err)
		return ExitAborted
	case errors.Is(err, pipeline.ErrReportSink):
		fmt.Fprintf(stderr, "population-report: %v\n", err)
		return ExitSinkFailed
	case err != nil:
		fmt.Fprintf(stderr, "population-report: %v\n", err)
		return ExitAborted
	}

	if !cfg.Quiet {
		fmt.Fprintf(stdout, "Elapsed: %s\n", pipeline.FormatElapsed(observer.Elapsed()))
	}
	return ExitOK
}

// buildSinks assembles the console table plus any configured file or SQL
// outputs. The returned func releases resources held by the sinks.
func buildSinks(ctx context.Context, cfg config.AppConfig, stdout io.Writer) (report.Sink, func(), error) {
	sinks := report.MultiSink{report.NewTableSink(stdout)}
	closers := []func(){}

	if cfg.CSVPath != "" {
		sinks = append(sinks, report.NewCSVSink(cfg.CSVPath))
	}

	if cfg.SQLDriver != "" {
		dialect, err := report.ParseDialect(cfg.SQLDriver)
		if err != nil {
			return nil, nil, err
		}
		db, err := report.OpenSQL(ctx, dialect, cfg.SQLDSN)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { db.Close() })
		sinks = append(sinks, report.NewSQLSink(db, dialect))
	}

	return sinks, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}

// startMetricsServer serves /metrics on addr in the background.
func startMetricsServer(addr string, logger zerolog.Logger) (*http.Server, net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	return srv, ln, nil
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

// elapsedObserver remembers the duration of the last run.
type elapsedObserver struct {
	next    pipeline.Observer
	elapsed time.Duration
}

func (o *elapsedObserver) PhaseFinished(state pipeline.State, elapsed time.Duration) {
	o.next.PhaseFinished(state, elapsed)
}

func (o *elapsedObserver) RunFinished(final pipeline.State, elapsed time.Duration) {
	o.elapsed = elapsed
	o.next.RunFinished(final, elapsed)
}

// Elapsed returns the duration of the last run.
func (o *elapsedObserver) Elapsed() time.Duration {
	return o.elapsed
}

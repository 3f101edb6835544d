// Package config parses the population-report command line.
package config

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Sternrassler/population-report/pkg/logging"
	"github.com/Sternrassler/population-report/pkg/pool"
	"github.com/Sternrassler/population-report/pkg/report"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "POPREPORT_"

// DefaultUserAgent is sent to the reference API when none is configured.
const DefaultUserAgent = "population-report/1.0"

// ErrHelp is returned when the user asked for usage.
var ErrHelp = pflag.ErrHelp

// AppConfig holds the settings of one CLI invocation.
type AppConfig struct {
	APIURL    string
	UserAgent string

	DetailsDir   string
	DetailsRedis bool
	RedisAddr    string

	Workers       int
	LookupTimeout time.Duration

	CSVPath   string
	SQLDriver string
	SQLDSN    string

	LogLevel    string
	LogPretty   bool
	MetricsAddr string
	Quiet       bool
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Precedence is flags, then POPREPORT_* environment variables, then defaults.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	var cfg AppConfig

	fs := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.SortFlags = false

	fs.StringVar(&cfg.APIURL, "api-url", "", "base URL of the reference API serving /provinces and /cities")
	fs.StringVar(&cfg.UserAgent, "user-agent", DefaultUserAgent, "User-Agent sent to the reference API")
	fs.StringVar(&cfg.DetailsDir, "details-dir", "", "directory of <province>/<city>.json detail records")
	fs.BoolVar(&cfg.DetailsRedis, "details-redis", false, "read detail records from Redis instead of a directory")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", "", "Redis address for caching, rate limit state and detail records")
	fs.IntVarP(&cfg.Workers, "workers", "w", pool.DefaultConfig().Workers, "number of concurrent detail lookups")
	fs.DurationVar(&cfg.LookupTimeout, "lookup-timeout", 0, "timeout per detail lookup (0 = none)")
	fs.StringVarP(&cfg.CSVPath, "csv", "o", "", "also write the report to this CSV file")
	fs.StringVar(&cfg.SQLDriver, "sql-driver", "", "also write the report to SQL (sqlite3, postgres, mysql)")
	fs.StringVar(&cfg.SQLDSN, "sql-dsn", "", "data source name for --sql-driver")
	fs.StringVar(&cfg.LogLevel, "log-level", string(logging.LevelInfo), "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", false, "human-readable console logs instead of JSON")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "no spinner or elapsed time, only the table")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c AppConfig) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("--api-url is required"))
	}
	if c.UserAgent == "" {
		errs = append(errs, errors.New("--user-agent must not be empty"))
	}

	switch {
	case c.DetailsDir == "" && !c.DetailsRedis:
		errs = append(errs, errors.New("one of --details-dir or --details-redis is required"))
	case c.DetailsDir != "" && c.DetailsRedis:
		errs = append(errs, errors.New("--details-dir and --details-redis are mutually exclusive"))
	}
	if c.DetailsRedis && c.RedisAddr == "" {
		errs = append(errs, errors.New("--details-redis requires --redis-addr"))
	}

	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("--workers must be at least 1 (got %d)", c.Workers))
	}
	if c.LookupTimeout < 0 {
		errs = append(errs, fmt.Errorf("--lookup-timeout must not be negative (got %v)", c.LookupTimeout))
	}

	if (c.SQLDriver == "") != (c.SQLDSN == "") {
		errs = append(errs, errors.New("--sql-driver and --sql-dsn must be given together"))
	} else if c.SQLDriver != "" {
		if _, err := report.ParseDialect(c.SQLDriver); err != nil {
			errs = append(errs, err)
		}
	}

	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("--log-level %q is not one of debug, info, warn, error", c.LogLevel))
	}

	return errors.Join(errs...)
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// envOverride maps an environment key (without EnvPrefix) to the flag it
// stands in for.
type envOverride struct {
	envKey string
	flag   string
	apply  func(*AppConfig, string)
}

var envOverrides = []envOverride{
	{"API_URL", "api-url", func(c *AppConfig, v string) { c.APIURL = v }},
	{"USER_AGENT", "user-agent", func(c *AppConfig, v string) { c.UserAgent = v }},
	{"DETAILS_DIR", "details-dir", func(c *AppConfig, v string) { c.DetailsDir = v }},
	{"DETAILS_REDIS", "details-redis", func(c *AppConfig, v string) {
		c.DetailsRedis = parseBoolEnv(v, c.DetailsRedis)
	}},
	{"REDIS_ADDR", "redis-addr", func(c *AppConfig, v string) { c.RedisAddr = v }},
	{"WORKERS", "workers", func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}},
	{"LOOKUP_TIMEOUT", "lookup-timeout", func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.LookupTimeout = parsed
		}
	}},
	{"CSV", "csv", func(c *AppConfig, v string) { c.CSVPath = v }},
	{"SQL_DRIVER", "sql-driver", func(c *AppConfig, v string) { c.SQLDriver = v }},
	{"SQL_DSN", "sql-dsn", func(c *AppConfig, v string) { c.SQLDSN = v }},
	{"LOG_LEVEL", "log-level", func(c *AppConfig, v string) { c.LogLevel = v }},
	{"LOG_PRETTY", "log-pretty", func(c *AppConfig, v string) {
		c.LogPretty = parseBoolEnv(v, c.LogPretty)
	}},
	{"METRICS_ADDR", "metrics-addr", func(c *AppConfig, v string) { c.MetricsAddr = v }},
	{"QUIET", "quiet", func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
}

// parseBoolEnv accepts "true", "1", "yes" and "false", "0", "no"
// (case-insensitive). Anything else keeps defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies POPREPORT_* variables for flags not set on the
// command line.
func applyEnvOverrides(cfg *AppConfig, fs *pflag.FlagSet) {
	for _, o := range envOverrides {
		if fs.Changed(o.flag) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(cfg, val)
		}
	}
}

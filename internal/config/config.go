package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	TokenSecret          string
	AwardTimeout         time.Duration
	ShutdownTimeout      time.Duration
	DeadlinePollInterval time.Duration
	DeadlineBatchSize    int
	WorkerPoolSize       int
}

const (
	defaultRunAddress           = ":8080"
	defaultTokenSecret          = "change-me-in-production"
	defaultAwardTimeout         = 15 * time.Second
	defaultShutdownTimeout      = 10 * time.Second
	defaultDeadlinePollInterval = 30 * time.Second
	defaultDeadlineBatchSize    = 32
	defaultWorkerPoolSize       = 2
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		TokenSecret:          getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		AwardTimeout:         getDuration(lookup, "AWARD_TIMEOUT", defaultAwardTimeout),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		DeadlinePollInterval: getDuration(lookup, "DEADLINE_POLL_INTERVAL", defaultDeadlinePollInterval),
		DeadlineBatchSize:    getInt(lookup, "DEADLINE_BATCH_SIZE", defaultDeadlineBatchSize),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
	}

	fs := flag.NewFlagSet("procurement", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		awardTimeoutStr    = cfg.AwardTimeout.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		pollIntervalStr    = cfg.DeadlinePollInterval.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing admin auth tokens")
	fs.StringVar(&awardTimeoutStr, "award-timeout", awardTimeoutStr, "Timeout for the whole award protocol")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&pollIntervalStr, "deadline-poll-interval", pollIntervalStr, "Interval between expired tender sweeps")
	fs.IntVar(&cfg.DeadlineBatchSize, "deadline-batch", cfg.DeadlineBatchSize, "Maximum tenders closed per sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent deadline workers")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.AwardTimeout, err = time.ParseDuration(awardTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid award timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.DeadlinePollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid deadline poll interval: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = string(content)
	}

	if cfg.AwardTimeout <= 0 {
		cfg.AwardTimeout = defaultAwardTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DeadlinePollInterval <= 0 {
		cfg.DeadlinePollInterval = defaultDeadlinePollInterval
	}

	if cfg.DeadlineBatchSize <= 0 {
		cfg.DeadlineBatchSize = defaultDeadlineBatchSize
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

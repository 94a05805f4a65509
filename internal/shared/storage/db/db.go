package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"jobportal/internal/shared/telemetry"
)

// ErrNoDatabaseURL is returned by Connect when no DSN is given.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is empty")

// Options tunes the connection pool. Zero values fall back to the server
// profile.
type Options struct {
	Profile         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// IsLambdaRuntime reports whether the process runs inside AWS Lambda.
func IsLambdaRuntime() bool {
	return strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != ""
}

// DefaultLambdaOptions keeps the pool tiny; each Lambda container holds its
// own connections against the same Postgres.
func DefaultLambdaOptions() Options {
	return Options{
		Profile:         "lambda",
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: 15 * time.Minute,
		ConnMaxIdleTime: 30 * time.Second,
		PingTimeout:     3 * time.Second,
	}
}

// DefaultServerOptions suits the API server and the queue worker.
func DefaultServerOptions() Options {
	return Options{
		Profile:         "server",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// DefaultMigrateOptions uses a single connection; goose runs migrations
// sequentially.
func DefaultMigrateOptions() Options {
	opts := DefaultServerOptions()
	opts.Profile = "migrate"
	opts.MaxOpenConns = 1
	opts.MaxIdleConns = 1
	return opts
}

// OptionsFromEnv applies DB_* overrides on top of defaults. Unparseable
// values are logged and ignored.
func OptionsFromEnv(defaults Options) Options {
	opts := defaults
	ints := map[string]*int{
		"DB_MAX_OPEN_CONNS": &opts.MaxOpenConns,
		"DB_MAX_IDLE_CONNS": &opts.MaxIdleConns,
	}
	for key, dst := range ints {
		if raw, ok := lookupEnv(key); ok {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 0 {
				telemetry.Warn("db.invalid_env", map[string]any{"key": key, "value": raw})
				continue
			}
			*dst = v
		}
	}
	durations := map[string]*time.Duration{
		"DB_CONN_MAX_LIFETIME":  &opts.ConnMaxLifetime,
		"DB_CONN_MAX_IDLE_TIME": &opts.ConnMaxIdleTime,
		"DB_PING_TIMEOUT":       &opts.PingTimeout,
	}
	for key, dst := range durations {
		if raw, ok := lookupEnv(key); ok {
			v, err := time.ParseDuration(raw)
			if err != nil || v < 0 {
				telemetry.Warn("db.invalid_env", map[string]any{"key": key, "value": raw})
				continue
			}
			*dst = v
		}
	}
	return opts
}

func lookupEnv(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

// openDB is swapped in tests.
var openDB = sql.Open

// Connect opens a pgx-backed pool and pings it before returning.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, ErrNoDatabaseURL
	}
	pool, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	opts = withFallbacks(opts)
	pool.SetMaxOpenConns(opts.MaxOpenConns)
	pool.SetMaxIdleConns(opts.MaxIdleConns)
	pool.SetConnMaxLifetime(opts.ConnMaxLifetime)
	pool.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	telemetry.Info("db.connected", map[string]any{
		"profile":   opts.Profile,
		"max_open":  opts.MaxOpenConns,
		"max_idle":  opts.MaxIdleConns,
		"open_now":  pool.Stats().OpenConnections,
		"ping_wait": opts.PingTimeout.String(),
	})
	return pool, nil
}

func withFallbacks(opts Options) Options {
	def := DefaultServerOptions()
	if opts.Profile == "" {
		opts.Profile = def.Profile
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = def.MaxOpenConns
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = def.MaxIdleConns
	}
	if opts.ConnMaxLifetime <= 0 {
		opts.ConnMaxLifetime = def.ConnMaxLifetime
	}
	if opts.ConnMaxIdleTime <= 0 {
		opts.ConnMaxIdleTime = def.ConnMaxIdleTime
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = def.PingTimeout
	}
	return opts
}

// shared is the warm-container pool reused across Lambda invocations.
var shared struct {
	mu      sync.Mutex
	pool    *sql.DB
	pending chan struct{}
}

// GetSingleton returns the process-wide pool, connecting on first use.
// Concurrent callers wait for the in-flight attempt; a failed attempt is
// retried by the next caller.
func GetSingleton(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	for {
		shared.mu.Lock()
		if shared.pool != nil {
			pool := shared.pool
			shared.mu.Unlock()
			return pool, nil
		}
		if wait := shared.pending; wait != nil {
			shared.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		done := make(chan struct{})
		shared.pending = done
		shared.mu.Unlock()

		pool, err := Connect(ctx, databaseURL, opts)

		shared.mu.Lock()
		if err == nil {
			shared.pool = pool
		}
		shared.pending = nil
		shared.mu.Unlock()
		close(done)

		if err != nil {
			return nil, err
		}
		telemetry.Info("db.singleton_init", map[string]any{"profile": opts.Profile})
		return pool, nil
	}
}

package postgres

import (
	"context"
	"credit-engine/internal/config"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 5 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// NewConnectionPool opens a pool and waits until the database answers a
// ping, retrying up to cfg.ConnectAttempts times with linear backoff.
func NewConnectionPool(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	if cfg.URL == "" {
		return nil, errors.New("database URL is empty in configuration")
	}

	poolConfig, err := configurePool(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Connecting to PostgreSQL database...",
		"host", poolConfig.ConnConfig.Host,
		"db", poolConfig.ConnConfig.Database,
		"max_conns", poolConfig.MaxConns)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := waitForDatabase(ctx, pool, cfg.ConnectAttempts, cfg.ConnectBackoff, logger); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Connected to PostgreSQL database.")
	return pool, nil
}

func configurePool(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolConfig.MaxConns {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}

	return poolConfig, nil
}

func waitForDatabase(ctx context.Context, db pinger, attempts int, backoff time.Duration, logger *slog.Logger) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err = db.Ping(pingCtx)
		cancel()
		if err == nil {
			return nil
		}

		logger.Warn("Database not reachable yet",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err))
		if i == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up waiting for database: %w", ctx.Err())
		case <-time.After(time.Duration(i) * backoff):
		}
	}

	logger.Error("Failed to ping database", "error", err)
	return fmt.Errorf("failed to ping database after %d attempts: %w", attempts, err)
}

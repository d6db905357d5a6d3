// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/errors"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the connection pool backing the persona, job and weight stores.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pool for cfg. It does not dial; call Ping to verify.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	maxOpen := cfg.MaxConnections
	if maxOpen <= 0 {
		maxOpen = 10
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 || maxIdle > maxOpen {
		maxIdle = maxOpen / 2
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", errors.NewDatabaseConnectionFailedError(err))
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gigboard/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient holds the connection pool the gig catalog reads from when
// catalog.source is postgres.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens the pool lazily; the first Ping dials.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping backs the worker manager's startup retry and the /ready check.
func (c *PostgresClient) Ping(ctx context.Context) error {
	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}

func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// GetDB is handed to catalog.NewPostgresCatalog.
func (c *PostgresClient) GetDB() *sql.DB {
	return c.DB
}

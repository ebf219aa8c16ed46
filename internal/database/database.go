package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"inventory-api/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service owns the process-wide connection pool
type Service struct {
	db *sql.DB
}

// New opens a pgx-backed pool. No connection is made until first use, so an
// unreachable database does not fail here.
func New(cfg config.DatabaseConfig) (*Service, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Service{db: db}, nil
}

// DB exposes the pool to repositories
func (s *Service) DB() *sql.DB {
	return s.db
}

// Health pings the database and reports the pool state
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	stats["idle"] = fmt.Sprint(dbStats.Idle)

	return stats
}

// Close releases every pooled connection
func (s *Service) Close() error {
	return s.db.Close()
}

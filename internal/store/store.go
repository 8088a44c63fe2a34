// Package store persists video job metadata in PostgreSQL.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps a PostgreSQL connection pool for the videos table.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and applies pending migrations.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx, migrations); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Save inserts the record inside a transaction and returns the persisted
// id. On any failure the transaction is rolled back and a store-level error
// wrapping the cause is returned.
func (s *Store) Save(ctx context.Context, rec VideoRecord) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to store video metadata: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO videos (id, proverb, story, screenplay, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Proverb, rec.Story, rec.Screenplay, rec.Status, rec.CreatedAt,
	); err != nil {
		_ = tx.Rollback(ctx)
		return "", fmt.Errorf("failed to store video metadata: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return "", fmt.Errorf("failed to store video metadata: %w", err)
	}

	return rec.ID, nil
}

// FindByStatus returns every record whose status equals the given value.
func (s *Store) FindByStatus(ctx context.Context, status string) ([]VideoRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, proverb, story, screenplay, status, created_at
		 FROM videos WHERE status = $1 ORDER BY created_at`,
		status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	var records []VideoRecord
	for rows.Next() {
		var rec VideoRecord
		if err := rows.Scan(&rec.ID, &rec.Proverb, &rec.Story, &rec.Screenplay, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read video records: %w", err)
	}

	return records, nil
}

// UpdateStatus sets a record's status inside a transaction.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to update video status: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE videos SET status = $1 WHERE id = $2`,
		status, id,
	); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to update video status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to update video status: %w", err)
	}

	return nil
}

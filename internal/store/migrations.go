package store

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE videos (
id TEXT PRIMARY KEY,
proverb TEXT NOT NULL,
story TEXT,
screenplay TEXT,
status TEXT NOT NULL DEFAULT 'pending',
created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX videos_status_idx ON videos (status)`,
}

// migrate applies the queries in wanted that are not yet recorded in the
// migration ledger. Applied queries must never be edited; append new ones.
func (s *Store) migrate(ctx context.Context, wanted []string) error {
	if _, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS migration
("id" SERIAL PRIMARY KEY, "query" TEXT)`,
	); err != nil {
		return err
	}

	rows, err := s.pool.Query(ctx, `SELECT query FROM migration ORDER BY id`)
	if err != nil {
		return err
	}
	existing := []string{}
	for rows.Next() {
		var query string
		if err := rows.Scan(&query); err != nil {
			rows.Close()
			return err
		}
		existing = append(existing, query)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	missing, err := compareMigrations(wanted, existing)
	if err != nil {
		return err
	}

	for _, query := range missing {
		if _, err := s.pool.Exec(ctx, query); err != nil {
			return err
		}
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO migration (query) VALUES ($1)`, query,
		); err != nil {
			return err
		}
	}

	return nil
}

func compareMigrations(wanted, existing []string) ([]string, error) {
	needed := []string{}
	if len(wanted) < len(existing) {
		return []string{}, fmt.Errorf("not enough migrations")
	}

	for i, want := range wanted {
		switch {
		case i >= len(existing):
			needed = append(needed, want)
		case want != existing[i]:
			return []string{}, fmt.Errorf("incompatible migration: %v", want)
		}
	}

	return needed, nil
}

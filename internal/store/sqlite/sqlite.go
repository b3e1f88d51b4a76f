// Package sqlite persists the document in a single-row SQLite table.
// Heavier than a flat file, but it gives atomic replaces and sits behind the
// same port as every other gateway.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fokus/internal/store"
)

const documentKey = "fokus"

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Load(ctx context.Context) ([]byte, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM document WHERE key = ?`, documentKey,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	return body, nil
}

func (s *Store) Save(ctx context.Context, doc []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO document (key, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		documentKey, doc,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM document WHERE key = ?`, documentKey,
	); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

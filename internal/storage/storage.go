// Package storage provides SQLite-backed persistence for analyzed demo
// results: one row per demo, per player-in-demo, per player-weapon, per
// round, and the team-score timeline.
package storage

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a sql.DB for the analysis store.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies the schema.
func Open(path string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	// Migrations: add columns introduced after initial schema creation.
	// ALTER TABLE returns "duplicate column name" for already-existing columns; that is safe to ignore.
	altMigrations := []string{
		`ALTER TABLE demos ADD COLUMN max_normal_duration_ms INTEGER NOT NULL DEFAULT 10000`,
		`ALTER TABLE demos ADD COLUMN hash TEXT NOT NULL DEFAULT ''`,
		`CREATE INDEX IF NOT EXISTS idx_demos_hash ON demos(hash)`,
		`ALTER TABLE demos ADD COLUMN match_type TEXT NOT NULL DEFAULT ''`,
	}
	for _, stmt := range altMigrations {
		if _, err := conn.Exec(stmt); err != nil && !strings.Contains(err.Error(), "duplicate column") {
			conn.Close()
			return nil, fmt.Errorf("migration: %w", err)
		}
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/rmbenavides/ZooDia/server/internal/platform/optimization"
)

// InitSQLite initializes the local SQLite database and creates the
// schemas for the event log and day reports.
func InitSQLite(dbPath string, opt *optimization.Config) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if opt != nil {
		db.SetMaxOpenConns(opt.DBMaxOpenConns)
		db.SetMaxIdleConns(opt.DBMaxIdleConns)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS zoo_events (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			event_type TEXT NOT NULL,
			actor_id TEXT,
			target_id TEXT,
			payload TEXT,
			tick INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_zoo_events_run ON zoo_events(run_id, tick);`,
		`CREATE TABLE IF NOT EXISTS day_reports (
			run_id TEXT PRIMARY KEY,
			day_length INTEGER NOT NULL,
			tours_admitted INTEGER NOT NULL,
			tours_skipped INTEGER NOT NULL,
			total_earnings INTEGER NOT NULL,
			finished_at DATETIME NOT NULL
		);`,
	}

	for _, schema := range schemas {
		if _, err := db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

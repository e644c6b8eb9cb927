// Package repository persists simulation runs, their job records, and
// per-task statistics in Postgres, and loads records back so statistics
// can be re-derived from the persisted rows.
package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// DB wraps the sql connection pool.
type DB struct {
	*sql.DB
}

// NewDB connects to Postgres and bootstraps the schema.
func NewDB(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	wrapped := &DB{DB: db}
	if err := wrapped.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return wrapped, nil
}

func (db *DB) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id UUID PRIMARY KEY,
		policy TEXT NOT NULL,
		horizon BIGINT NOT NULL,
		seed BIGINT NOT NULL,
		total_jobs INT NOT NULL,
		missed_deadlines INT NOT NULL,
		avg_response_time DOUBLE PRECISION NOT NULL,
		min_response_time BIGINT NOT NULL,
		max_response_time BIGINT NOT NULL,
		cpu_utilization DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS job_records (
		run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INT NOT NULL,
		task_name TEXT NOT NULL,
		job_id INT NOT NULL,
		release_time BIGINT NOT NULL,
		start_time BIGINT NOT NULL,
		finish_time BIGINT NOT NULL,
		absolute_deadline BIGINT NOT NULL,
		response_time BIGINT NOT NULL,
		waiting_time BIGINT NOT NULL,
		tardiness BIGINT NOT NULL,
		processing_time BIGINT NOT NULL,
		missed BOOLEAN NOT NULL,
		value BIGINT NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, seq)
	);

	CREATE TABLE IF NOT EXISTS task_stats (
		run_id UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		task_name TEXT NOT NULL,
		total_jobs INT NOT NULL,
		missed_deadlines INT NOT NULL,
		avg_response_time DOUBLE PRECISION NOT NULL,
		min_response_time BIGINT NOT NULL,
		max_response_time BIGINT NOT NULL,
		PRIMARY KEY (run_id, task_name)
	);

	CREATE TABLE IF NOT EXISTS feed_records (
		id BIGSERIAL PRIMARY KEY,
		task_name TEXT NOT NULL,
		job_id INT NOT NULL,
		release_time BIGINT NOT NULL,
		start_time BIGINT NOT NULL,
		finish_time BIGINT NOT NULL,
		absolute_deadline BIGINT NOT NULL,
		response_time BIGINT NOT NULL,
		waiting_time BIGINT NOT NULL,
		tardiness BIGINT NOT NULL,
		processing_time BIGINT NOT NULL,
		missed BOOLEAN NOT NULL,
		value BIGINT NOT NULL DEFAULT 0,
		observed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	_, err := db.Exec(schema)
	return err
}

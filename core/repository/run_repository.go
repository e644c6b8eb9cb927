package repository

import (
	"database/sql"
	"fmt"
	"time"

	"sched-sim/core/engine"
	"sched-sim/core/models"

	"github.com/google/uuid"
)

// RunRepository handles database operations for simulation runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// RunInfo is the stored summary row of one run.
type RunInfo struct {
	ID        string                   `json:"id"`
	Seed      int64                    `json:"seed"`
	Summary   models.ComparisonSummary `json:"summary"`
	CreatedAt time.Time                `json:"created_at"`
}

// SaveRun persists a finished run with all its records and per-task
// statistics in one transaction and returns the new run ID.
func (r *RunRepository) SaveRun(res *engine.Result) (string, error) {
	runID := uuid.New().String()

	tx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (
			id, policy, horizon, seed, total_jobs, missed_deadlines,
			avg_response_time, min_response_time, max_response_time, cpu_utilization
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		runID,
		res.Policy,
		res.Horizon,
		res.Seed,
		res.Summary.TotalJobs,
		res.Summary.MissedDeadlines,
		res.Summary.AvgResponseTime,
		res.Summary.MinResponseTime,
		res.Summary.MaxResponseTime,
		res.Summary.CPUUtilization,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	recStmt, err := tx.Prepare(`
		INSERT INTO job_records (
			run_id, seq, task_name, job_id, release_time, start_time,
			finish_time, absolute_deadline, response_time, waiting_time,
			tardiness, processing_time, missed, value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`)
	if err != nil {
		return "", err
	}
	defer recStmt.Close()

	for i, rec := range res.Records {
		_, err = recStmt.Exec(
			runID, i, rec.TaskName, rec.JobID, rec.ReleaseTime, rec.StartTime,
			rec.FinishTime, rec.AbsoluteDeadline, rec.ResponseTime, rec.WaitingTime,
			rec.Tardiness, rec.ProcessingTime, rec.Missed, rec.Value,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert job record %d: %w", i, err)
		}
	}

	for _, ts := range res.TaskStats {
		_, err = tx.Exec(`
			INSERT INTO task_stats (
				run_id, task_name, total_jobs, missed_deadlines,
				avg_response_time, min_response_time, max_response_time
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			runID, ts.TaskName, ts.TotalJobs, ts.MissedDeadlines,
			ts.AvgResponseTime, ts.MinResponseTime, ts.MaxResponseTime,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert task stats: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// GetRun retrieves a run summary by ID.
func (r *RunRepository) GetRun(id string) (*RunInfo, error) {
	row := r.db.QueryRow(`
		SELECT id, policy, horizon, seed, total_jobs, missed_deadlines,
			avg_response_time, min_response_time, max_response_time,
			cpu_utilization, created_at
		FROM runs WHERE id = $1`, id)

	var info RunInfo
	err := row.Scan(
		&info.ID,
		&info.Summary.Policy,
		&info.Summary.Horizon,
		&info.Seed,
		&info.Summary.TotalJobs,
		&info.Summary.MissedDeadlines,
		&info.Summary.AvgResponseTime,
		&info.Summary.MinResponseTime,
		&info.Summary.MaxResponseTime,
		&info.Summary.CPUUtilization,
		&info.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepository) ListRuns(limit int) ([]*RunInfo, error) {
	rows, err := r.db.Query(`
		SELECT id, policy, horizon, seed, total_jobs, missed_deadlines,
			avg_response_time, min_response_time, max_response_time,
			cpu_utilization, created_at
		FROM runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*RunInfo
	for rows.Next() {
		var info RunInfo
		err := rows.Scan(
			&info.ID,
			&info.Summary.Policy,
			&info.Summary.Horizon,
			&info.Seed,
			&info.Summary.TotalJobs,
			&info.Summary.MissedDeadlines,
			&info.Summary.AvgResponseTime,
			&info.Summary.MinResponseTime,
			&info.Summary.MaxResponseTime,
			&info.Summary.CPUUtilization,
			&info.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, &info)
	}
	return runs, rows.Err()
}

// GetRecords loads the job records of a run in completion order, so
// statistics can be re-derived from the persisted rows.
func (r *RunRepository) GetRecords(runID string) ([]models.JobRecord, error) {
	rows, err := r.db.Query(`
		SELECT task_name, job_id, release_time, start_time, finish_time,
			absolute_deadline, response_time, waiting_time, tardiness,
			processing_time, missed, value
		FROM job_records WHERE run_id = $1 ORDER BY seq`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.JobRecord
	for rows.Next() {
		var rec models.JobRecord
		err := rows.Scan(
			&rec.TaskName, &rec.JobID, &rec.ReleaseTime, &rec.StartTime,
			&rec.FinishTime, &rec.AbsoluteDeadline, &rec.ResponseTime,
			&rec.WaitingTime, &rec.Tardiness, &rec.ProcessingTime,
			&rec.Missed, &rec.Value,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

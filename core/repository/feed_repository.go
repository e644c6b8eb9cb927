package repository

import (
	"sched-sim/core/models"
)

// FeedRepository handles database operations for externally observed
// job records folded from the live sensor feed.
type FeedRepository struct {
	db *DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *DB) *FeedRepository {
	return &FeedRepository{db: db}
}

// Record persists one folded feed record. It satisfies feed.RecordSink.
func (r *FeedRepository) Record(rec models.JobRecord) error {
	query := `
		INSERT INTO feed_records (
			task_name, job_id, release_time, start_time, finish_time,
			absolute_deadline, response_time, waiting_time, tardiness,
			processing_time, missed, value
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(query,
		rec.TaskName,
		rec.JobID,
		rec.ReleaseTime,
		rec.StartTime,
		rec.FinishTime,
		rec.AbsoluteDeadline,
		rec.ResponseTime,
		rec.WaitingTime,
		rec.Tardiness,
		rec.ProcessingTime,
		rec.Missed,
		rec.Value,
	)
	return err
}

// GetRecords retrieves the most recently observed feed records.
func (r *FeedRepository) GetRecords(limit int) ([]models.JobRecord, error) {
	query := `
		SELECT task_name, job_id, release_time, start_time, finish_time,
		       absolute_deadline, response_time, waiting_time, tardiness,
		       processing_time, missed, value
		FROM feed_records
		ORDER BY observed_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.JobRecord
	for rows.Next() {
		var rec models.JobRecord
		err := rows.Scan(
			&rec.TaskName,
			&rec.JobID,
			&rec.ReleaseTime,
			&rec.StartTime,
			&rec.FinishTime,
			&rec.AbsoluteDeadline,
			&rec.ResponseTime,
			&rec.WaitingTime,
			&rec.Tardiness,
			&rec.ProcessingTime,
			&rec.Missed,
			&rec.Value,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

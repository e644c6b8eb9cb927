package models

import "strconv"

// JobRecord is the immutable flat row describing one completed job.
// Every field is a scalar so records can be exported as tabular data
// and persisted without transformation.
type JobRecord struct {
	TaskName         string `json:"task"`
	JobID            int    `json:"job_id"`
	ReleaseTime      int64  `json:"release_time"`
	StartTime        int64  `json:"start_time"`
	FinishTime       int64  `json:"finish_time"`
	AbsoluteDeadline int64  `json:"absolute_deadline"`
	ResponseTime     int64  `json:"response_time"`
	WaitingTime      int64  `json:"waiting_time"`
	Tardiness        int64  `json:"tardiness"`
	ProcessingTime   int64  `json:"processing_time"`
	Missed           bool   `json:"missed"`
	Value            int64  `json:"value,omitempty"` // sensor reading, feed-sourced jobs only
}

// RecordHeader returns the column names of the tabular form of a record.
func RecordHeader() []string {
	return []string{
		"task", "job_id", "release_time", "start_time", "finish_time",
		"absolute_deadline", "response_time", "waiting_time", "tardiness",
		"processing_time", "missed", "value",
	}
}

// Row returns the record as one flat row of strings, matching RecordHeader.
func (r JobRecord) Row() []string {
	return []string{
		r.TaskName,
		strconv.Itoa(r.JobID),
		strconv.FormatInt(r.ReleaseTime, 10),
		strconv.FormatInt(r.StartTime, 10),
		strconv.FormatInt(r.FinishTime, 10),
		strconv.FormatInt(r.AbsoluteDeadline, 10),
		strconv.FormatInt(r.ResponseTime, 10),
		strconv.FormatInt(r.WaitingTime, 10),
		strconv.FormatInt(r.Tardiness, 10),
		strconv.FormatInt(r.ProcessingTime, 10),
		strconv.FormatBool(r.Missed),
		strconv.FormatInt(r.Value, 10),
	}
}

// TaskStatistics aggregates the completed jobs of one task.
type TaskStatistics struct {
	TaskName        string  `json:"task"`
	TotalJobs       int     `json:"total_jobs"`
	MissedDeadlines int     `json:"missed_deadlines"`
	AvgResponseTime float64 `json:"avg_response_time"`
	MinResponseTime int64   `json:"min_response_time"`
	MaxResponseTime int64   `json:"max_response_time"`
}

// ComparisonSummary aggregates a whole run across all tasks.
type ComparisonSummary struct {
	Policy          string  `json:"policy"`
	Horizon         int64   `json:"horizon"`
	TotalJobs       int     `json:"total_jobs"`
	MissedDeadlines int     `json:"missed_deadlines"`
	AvgResponseTime float64 `json:"avg_response_time"`
	MinResponseTime int64   `json:"min_response_time"`
	MaxResponseTime int64   `json:"max_response_time"`
	CPUUtilization  float64 `json:"cpu_utilization"` // processing consumed / horizon
}

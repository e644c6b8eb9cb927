// Package storage writes run artifacts to disk as flat CSV snapshots.
package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sched-sim/core/engine"
	"sched-sim/core/models"
)

// Exporter writes CSV snapshots of run results into a directory.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter rooted at dir, creating it if needed.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export dir: %w", err)
	}
	return &Exporter{dir: dir}, nil
}

// WriteRun writes the job details and per-task statistics of one run.
func (e *Exporter) WriteRun(res *engine.Result) error {
	prefix := strings.ToLower(res.Policy)
	if err := e.writeRecords(prefix+"_job_details.csv", res.Records); err != nil {
		return err
	}
	return e.writeTaskStats(prefix+"_task_statistics.csv", res.TaskStats)
}

// WriteComparison writes the cross-policy summary table.
func (e *Exporter) WriteComparison(results []*engine.Result) error {
	rows := [][]string{{
		"policy", "total_jobs", "missed_deadlines", "avg_response_time",
		"min_response_time", "max_response_time", "cpu_utilization",
	}}
	for _, res := range results {
		s := res.Summary
		rows = append(rows, []string{
			s.Policy,
			strconv.Itoa(s.TotalJobs),
			strconv.Itoa(s.MissedDeadlines),
			strconv.FormatFloat(s.AvgResponseTime, 'f', 4, 64),
			strconv.FormatInt(s.MinResponseTime, 10),
			strconv.FormatInt(s.MaxResponseTime, 10),
			strconv.FormatFloat(s.CPUUtilization, 'f', 4, 64),
		})
	}
	return e.writeCSV("scheduling_comparison_summary.csv", rows)
}

func (e *Exporter) writeRecords(name string, records []models.JobRecord) error {
	rows := [][]string{models.RecordHeader()}
	for _, rec := range records {
		rows = append(rows, rec.Row())
	}
	return e.writeCSV(name, rows)
}

func (e *Exporter) writeTaskStats(name string, stats []models.TaskStatistics) error {
	rows := [][]string{{
		"task", "total_jobs", "missed_deadlines",
		"avg_response_time", "min_response_time", "max_response_time",
	}}
	for _, ts := range stats {
		rows = append(rows, []string{
			ts.TaskName,
			strconv.Itoa(ts.TotalJobs),
			strconv.Itoa(ts.MissedDeadlines),
			strconv.FormatFloat(ts.AvgResponseTime, 'f', 4, 64),
			strconv.FormatInt(ts.MinResponseTime, 10),
			strconv.FormatInt(ts.MaxResponseTime, 10),
		})
	}
	return e.writeCSV(name, rows)
}

func (e *Exporter) writeCSV(name string, rows [][]string) error {
	f, err := os.Create(filepath.Join(e.dir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Package metrics consumes terminal job events and reduces them into
// per-task and overall statistics. Aggregation is a pure reduction over
// the closed set of completed jobs: rebuilding a collector from
// persisted records reproduces the original statistics exactly.
package metrics

import (
	"sched-sim/core/models"

	"gonum.org/v1/gonum/stat"
)

// Collector accumulates immutable job records.
type Collector struct {
	records []models.JobRecord
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// NewCollectorFromRecords rebuilds a collector from persisted records,
// preserving their order.
func NewCollectorFromRecords(records []models.JobRecord) *Collector {
	c := &Collector{records: make([]models.JobRecord, len(records))}
	copy(c.records, records)
	return c
}

// RecordCompletion takes ownership of a completed job as an immutable
// record. The job must not be mutated afterwards.
func (c *Collector) RecordCompletion(j *models.Job) {
	c.records = append(c.records, j.Record())
}

// Record appends an already-built record, e.g. one folded in from the
// external event feed.
func (c *Collector) Record(rec models.JobRecord) {
	c.records = append(c.records, rec)
}

// Records returns the accumulated records in completion order.
func (c *Collector) Records() []models.JobRecord {
	return c.records
}

// TaskStatistics aggregates records per task, in order of each task's
// first completion.
func (c *Collector) TaskStatistics() []models.TaskStatistics {
	index := make(map[string]int)
	var stats []models.TaskStatistics
	responses := make(map[string][]float64)

	for _, rec := range c.records {
		i, ok := index[rec.TaskName]
		if !ok {
			i = len(stats)
			index[rec.TaskName] = i
			stats = append(stats, models.TaskStatistics{
				TaskName:        rec.TaskName,
				MinResponseTime: rec.ResponseTime,
				MaxResponseTime: rec.ResponseTime,
			})
		}
		s := &stats[i]
		s.TotalJobs++
		if rec.Missed {
			s.MissedDeadlines++
		}
		if rec.ResponseTime < s.MinResponseTime {
			s.MinResponseTime = rec.ResponseTime
		}
		if rec.ResponseTime > s.MaxResponseTime {
			s.MaxResponseTime = rec.ResponseTime
		}
		responses[rec.TaskName] = append(responses[rec.TaskName], float64(rec.ResponseTime))
	}

	for i := range stats {
		stats[i].AvgResponseTime = stat.Mean(responses[stats[i].TaskName], nil)
	}
	return stats
}

// Summary aggregates the whole run. Measured CPU utilization is the
// total processing time consumed divided by the simulation horizon.
func (c *Collector) Summary(policy string, horizon int64) models.ComparisonSummary {
	sum := models.ComparisonSummary{
		Policy:  policy,
		Horizon: horizon,
	}
	if len(c.records) == 0 {
		return sum
	}

	responses := make([]float64, 0, len(c.records))
	var processing int64
	sum.MinResponseTime = c.records[0].ResponseTime
	sum.MaxResponseTime = c.records[0].ResponseTime
	for _, rec := range c.records {
		sum.TotalJobs++
		if rec.Missed {
			sum.MissedDeadlines++
		}
		if rec.ResponseTime < sum.MinResponseTime {
			sum.MinResponseTime = rec.ResponseTime
		}
		if rec.ResponseTime > sum.MaxResponseTime {
			sum.MaxResponseTime = rec.ResponseTime
		}
		responses = append(responses, float64(rec.ResponseTime))
		processing += rec.ProcessingTime
	}
	sum.AvgResponseTime = stat.Mean(responses, nil)
	if horizon > 0 {
		sum.CPUUtilization = float64(processing) / float64(horizon)
	}
	return sum
}

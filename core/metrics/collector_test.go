package metrics

import (
	"testing"

	"sched-sim/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.JobRecord {
	return []models.JobRecord{
		{TaskName: "Ultra", JobID: 1, ReleaseTime: 0, StartTime: 0, FinishTime: 32, AbsoluteDeadline: 100, ResponseTime: 32, ProcessingTime: 32},
		{TaskName: "PIR", JobID: 1, ReleaseTime: 0, StartTime: 32, FinishTime: 57, AbsoluteDeadline: 80, ResponseTime: 57, WaitingTime: 32, ProcessingTime: 25},
		{TaskName: "Ultra", JobID: 2, ReleaseTime: 100, StartTime: 100, FinishTime: 140, AbsoluteDeadline: 200, ResponseTime: 40, WaitingTime: 8, ProcessingTime: 32},
		{TaskName: "PIR", JobID: 2, ReleaseTime: 200, StartTime: 260, FinishTime: 290, AbsoluteDeadline: 280, ResponseTime: 90, WaitingTime: 65, Tardiness: 10, ProcessingTime: 25, Missed: true},
	}
}

func TestTaskStatistics(t *testing.T) {
	c := NewCollectorFromRecords(sampleRecords())
	stats := c.TaskStatistics()

	require.Len(t, stats, 2)
	ultra, pir := stats[0], stats[1]

	assert.Equal(t, "Ultra", ultra.TaskName)
	assert.Equal(t, 2, ultra.TotalJobs)
	assert.Equal(t, 0, ultra.MissedDeadlines)
	assert.InDelta(t, 36.0, ultra.AvgResponseTime, 1e-9)
	assert.Equal(t, int64(32), ultra.MinResponseTime)
	assert.Equal(t, int64(40), ultra.MaxResponseTime)

	assert.Equal(t, "PIR", pir.TaskName)
	assert.Equal(t, 2, pir.TotalJobs)
	assert.Equal(t, 1, pir.MissedDeadlines)
	assert.InDelta(t, 73.5, pir.AvgResponseTime, 1e-9)
}

func TestSummary(t *testing.T) {
	c := NewCollectorFromRecords(sampleRecords())
	sum := c.Summary("EDF", 300)

	assert.Equal(t, "EDF", sum.Policy)
	assert.Equal(t, 4, sum.TotalJobs)
	assert.Equal(t, 1, sum.MissedDeadlines)
	assert.Equal(t, int64(32), sum.MinResponseTime)
	assert.Equal(t, int64(90), sum.MaxResponseTime)
	assert.InDelta(t, 54.75, sum.AvgResponseTime, 1e-9)
	// 32+25+32+25 = 114 ms of processing over a 300 ms horizon.
	assert.InDelta(t, 0.38, sum.CPUUtilization, 1e-9)
}

func TestEmptyCollector(t *testing.T) {
	c := NewCollector()
	assert.Empty(t, c.Records())
	assert.Empty(t, c.TaskStatistics())

	sum := c.Summary("FIFO", 1000)
	assert.Equal(t, 0, sum.TotalJobs)
	assert.Zero(t, sum.CPUUtilization)
}

func TestRoundTrip(t *testing.T) {
	// Statistics must be re-derivable identically from the persisted
	// job-level records.
	original := NewCollectorFromRecords(sampleRecords())
	rebuilt := NewCollectorFromRecords(original.Records())

	assert.Equal(t, original.TaskStatistics(), rebuilt.TaskStatistics())
	assert.Equal(t, original.Summary("RM", 300), rebuilt.Summary("RM", 300))
}

func TestRecordCompletion(t *testing.T) {
	task := &models.TaskDescriptor{Name: "Sound", Period: 500, WCET: 180, RelativeDeadline: 500}
	job := &models.Job{
		Task:             task,
		JobID:            1,
		ReleaseTime:      0,
		AbsoluteDeadline: 500,
		ExecutionTime:    180,
		StartTime:        57,
		FinishTime:       237,
	}

	c := NewCollector()
	c.RecordCompletion(job)

	require.Len(t, c.Records(), 1)
	rec := c.Records()[0]
	assert.Equal(t, "Sound", rec.TaskName)
	assert.Equal(t, int64(237), rec.ResponseTime)
	assert.Equal(t, int64(57), rec.WaitingTime)
	assert.False(t, rec.Missed)
}

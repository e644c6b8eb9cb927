package feed

import (
	"testing"

	"sched-sim/core/metrics"
	"sched-sim/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedTaskSet() models.TaskSet {
	return models.TaskSet{
		{Name: "Ultra", Period: 200, WCET: 32, RelativeDeadline: 200},
		{Name: "PIR", WCET: 25, RelativeDeadline: 50},
	}
}

func release(task string, job int, rel, start, dl int64) *models.FeedEvent {
	return &models.FeedEvent{
		Type: models.FeedEventRelease, TaskName: task, JobID: job,
		ReleaseTime: rel, StartTime: start, AbsoluteDeadline: dl,
	}
}

func done(task string, job int, end, val int64) *models.FeedEvent {
	return &models.FeedEvent{
		Type: models.FeedEventDone, TaskName: task, JobID: job,
		FinishTime: end, Value: val,
	}
}

func TestFoldCompleteJob(t *testing.T) {
	collector := metrics.NewCollector()
	f := NewFolder(feedTaskSet(), collector)

	require.NoError(t, f.Fold(release("Ultra", 1, 1000, 1010, 1200)))
	require.NoError(t, f.Fold(done("Ultra", 1, 1060, 87)))

	records := collector.Records()
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "Ultra", rec.TaskName)
	assert.Equal(t, int64(60), rec.ResponseTime)
	assert.Equal(t, int64(10), rec.WaitingTime)
	assert.Equal(t, int64(50), rec.ProcessingTime)
	assert.Equal(t, rec.ResponseTime, rec.WaitingTime+rec.ProcessingTime)
	assert.Equal(t, int64(87), rec.Value)
	assert.False(t, rec.Missed)
	assert.Zero(t, f.Dropped())
}

func TestFoldLateJobIsMissed(t *testing.T) {
	collector := metrics.NewCollector()
	f := NewFolder(feedTaskSet(), collector)

	require.NoError(t, f.Fold(release("PIR", 4, 500, 530, 550)))
	require.NoError(t, f.Fold(done("PIR", 4, 580, 1)))

	rec := collector.Records()[0]
	assert.True(t, rec.Missed)
	assert.Equal(t, int64(30), rec.Tardiness)
}

func TestFoldDropsMalformedEvents(t *testing.T) {
	collector := metrics.NewCollector()
	f := NewFolder(feedTaskSet(), collector)

	var malformed *models.MalformedEventError

	// Unknown task name.
	err := f.Fold(release("Ghost", 1, 0, 0, 100))
	require.ErrorAs(t, err, &malformed)

	// Start before release.
	err = f.Fold(release("Ultra", 2, 1000, 900, 1200))
	require.ErrorAs(t, err, &malformed)

	// Completion without a matching release.
	err = f.Fold(done("Ultra", 9, 5000, 3))
	require.ErrorAs(t, err, &malformed)

	// Completion before the reported start.
	require.NoError(t, f.Fold(release("Ultra", 3, 1000, 1010, 1200)))
	err = f.Fold(done("Ultra", 3, 1005, 3))
	require.ErrorAs(t, err, &malformed)

	// Duplicate release for the same job.
	require.NoError(t, f.Fold(release("PIR", 7, 100, 100, 150)))
	err = f.Fold(release("PIR", 7, 110, 110, 160))
	require.ErrorAs(t, err, &malformed)

	assert.Equal(t, 5, f.Dropped())
	// Dropped events never reach the collector.
	assert.Empty(t, collector.Records())
}

type memorySink struct {
	records []models.JobRecord
}

func (s *memorySink) Record(rec models.JobRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func TestFoldForwardsToSinks(t *testing.T) {
	collector := metrics.NewCollector()
	f := NewFolder(feedTaskSet(), collector)
	sink := &memorySink{}
	f.AddSink(sink)

	require.NoError(t, f.Fold(release("Ultra", 1, 0, 0, 200)))
	require.NoError(t, f.Fold(done("Ultra", 1, 40, 9)))

	require.Len(t, sink.records, 1)
	assert.Equal(t, collector.Records(), sink.records)
}

func TestFoldContinuesAfterDrops(t *testing.T) {
	collector := metrics.NewCollector()
	f := NewFolder(feedTaskSet(), collector)

	assert.Error(t, f.Fold(release("Ghost", 1, 0, 0, 100)))
	require.NoError(t, f.Fold(release("Ultra", 1, 0, 0, 200)))
	require.NoError(t, f.Fold(done("Ultra", 1, 40, 9)))

	assert.Len(t, collector.Records(), 1)
	assert.Equal(t, 1, f.Dropped())
}

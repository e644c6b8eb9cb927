package generator

import (
	"testing"

	"sched-sim/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(g *Generator, t int64) []*models.Job {
	var jobs []*models.Job
	g.Admit(t, func(j *models.Job) { jobs = append(jobs, j) })
	return jobs
}

func TestPeriodicRelease(t *testing.T) {
	set := models.TaskSet{{Name: "Ultra", Period: 100, WCET: 32, RelativeDeadline: 80}}
	g := New(set, 0)

	jobs := collect(g, 0)
	require.Len(t, jobs, 1)
	j := jobs[0]
	assert.Equal(t, 1, j.JobID)
	assert.Equal(t, int64(0), j.ReleaseTime)
	assert.Equal(t, int64(80), j.AbsoluteDeadline)
	assert.Equal(t, int64(32), j.RemainingTime)
	assert.Equal(t, models.TimeUnset, j.StartTime)
	assert.Equal(t, models.TimeUnset, j.FinishTime)

	// Nothing until the next period boundary.
	for tick := int64(1); tick < 100; tick++ {
		assert.Empty(t, collect(g, tick))
	}
	jobs = collect(g, 100)
	require.Len(t, jobs, 1)
	assert.Equal(t, 2, jobs[0].JobID)
	assert.Equal(t, int64(100), jobs[0].ReleaseTime)
}

func TestPeriodicBacklogQueues(t *testing.T) {
	// Back-to-back late jobs queue up; release never skips or fails.
	set := models.TaskSet{{Name: "Ultra", Period: 100, WCET: 32, RelativeDeadline: 100}}
	g := New(set, 0)

	jobs := collect(g, 250)
	require.Len(t, jobs, 3)
	assert.Equal(t, int64(0), jobs[0].ReleaseTime)
	assert.Equal(t, int64(100), jobs[1].ReleaseTime)
	assert.Equal(t, int64(200), jobs[2].ReleaseTime)
	assert.Equal(t, []int{1, 2, 3}, []int{jobs[0].JobID, jobs[1].JobID, jobs[2].JobID})
}

func TestEventTriggeredGating(t *testing.T) {
	set := models.TaskSet{{Name: "Button", WCET: 35, RelativeDeadline: 50, TriggerTimes: []int64{10, 20, 90}}}
	g := New(set, 0)

	assert.Empty(t, collect(g, 9))

	jobs := collect(g, 10)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(10), jobs[0].ReleaseTime)
	assert.Equal(t, int64(60), jobs[0].AbsoluteDeadline)

	// Trigger at 20 is absorbed while the first job is uncompleted.
	assert.Empty(t, collect(g, 20))
	assert.Empty(t, collect(g, 50))

	g.JobCompleted(0)

	// Re-armed, but the absorbed trigger does not fire retroactively.
	assert.Empty(t, collect(g, 60))

	jobs = collect(g, 90)
	require.Len(t, jobs, 1)
	assert.Equal(t, 2, jobs[0].JobID)
	assert.Equal(t, int64(90), jobs[0].ReleaseTime)
}

func TestWCETJitterBoundedAndDeterministic(t *testing.T) {
	set := models.TaskSet{{Name: "Sound", Period: 100, WCET: 180, RelativeDeadline: 500, WCETJitter: 20}}

	g1 := New(set, 42)
	g2 := New(set, 42)
	for tick := int64(0); tick <= 1000; tick += 100 {
		a := collect(g1, tick)
		b := collect(g2, tick)
		require.Len(t, a, 1)
		require.Len(t, b, 1)
		assert.Equal(t, a[0].ExecutionTime, b[0].ExecutionTime, "same seed must reproduce the job stream")
		assert.GreaterOrEqual(t, a[0].ExecutionTime, int64(160))
		assert.LessOrEqual(t, a[0].ExecutionTime, int64(200))
	}
}

func TestNoJitterMeansExactWCET(t *testing.T) {
	set := models.TaskSet{{Name: "Ultra", Period: 100, WCET: 32, RelativeDeadline: 100}}
	g := New(set, 7)
	jobs := collect(g, 0)
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(32), jobs[0].ExecutionTime)
}

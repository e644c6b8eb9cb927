package policy

import (
	"testing"

	"sched-sim/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() models.TaskSet {
	return models.TaskSet{
		{Name: "Ultra", Period: 100, WCET: 32, RelativeDeadline: 100},
		{Name: "PIR", Period: 200, WCET: 25, RelativeDeadline: 80},
		{Name: "Evt", WCET: 10, RelativeDeadline: 50},
	}
}

func job(taskIndex int, seq int64, release, deadline int64) *models.Job {
	return &models.Job{
		TaskIndex:        taskIndex,
		Seq:              seq,
		ReleaseTime:      release,
		AbsoluteDeadline: deadline,
	}
}

func TestForName(t *testing.T) {
	set := testSet()
	for _, name := range []string{"edf", "RM", "fifo", "EDF"} {
		pol, err := ForName(name, set)
		require.NoError(t, err)
		assert.NotEmpty(t, pol.Name())
	}
	_, err := ForName("llf", set)
	assert.Error(t, err)
}

func TestSelectNextEmpty(t *testing.T) {
	for _, pol := range All(testSet()) {
		assert.Nil(t, pol.SelectNext(nil), pol.Name())
	}
}

func TestEDFOrdering(t *testing.T) {
	early := job(1, 2, 100, 180)
	late := job(0, 1, 100, 200)
	assert.Same(t, early, EDF{}.SelectNext([]*models.Job{late, early}))

	// Deadline tie breaks on release time.
	a := job(0, 2, 50, 200)
	b := job(0, 1, 60, 200)
	assert.Same(t, a, EDF{}.SelectNext([]*models.Job{b, a}))

	// Full tie breaks on task set index.
	c := job(0, 2, 50, 200)
	d := job(1, 1, 50, 200)
	assert.Same(t, c, EDF{}.SelectNext([]*models.Job{d, c}))
}

func TestRMStaticPriority(t *testing.T) {
	rm := NewRM(testSet())

	// Shorter period wins regardless of deadlines.
	ultra := job(0, 2, 0, 1000)
	pir := job(1, 1, 0, 10)
	assert.Same(t, ultra, rm.SelectNext([]*models.Job{pir, ultra}))

	// The event-triggered task's deadline (50) stands in for its period,
	// which ranks it above Ultra (100).
	evt := job(2, 3, 0, 50)
	assert.Same(t, evt, rm.SelectNext([]*models.Job{pir, ultra, evt}))
}

func TestRMPriorityIgnoresAbsoluteDeadline(t *testing.T) {
	// A job's RM priority never changes across its lifetime: an Ultra
	// job with a far deadline still beats a PIR job about to miss.
	rm := NewRM(models.TaskSet{
		{Name: "Ultra", Period: 100, WCET: 32, RelativeDeadline: 100},
		{Name: "PIR", Period: 200, WCET: 25, RelativeDeadline: 80},
	})
	ultra := job(0, 5, 900, 1000)
	pirUrgent := job(1, 1, 850, 901)
	assert.Same(t, ultra, rm.SelectNext([]*models.Job{pirUrgent, ultra}))
}

func TestFIFOOrdering(t *testing.T) {
	first := job(1, 1, 10, 20)
	second := job(0, 2, 15, 16)
	assert.Same(t, first, FIFO{}.SelectNext([]*models.Job{second, first}))

	// Release tie breaks on creation order.
	a := job(0, 1, 10, 500)
	b := job(1, 2, 10, 20)
	assert.Same(t, a, FIFO{}.SelectNext([]*models.Job{b, a}))
}

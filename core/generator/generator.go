// Package generator turns task descriptors into job instances as
// simulated time advances. Periodic tasks release strictly every
// period; event-triggered tasks release when a trigger is pending and
// no earlier job of the task is still uncompleted.
package generator

import (
	"math/rand"

	"sched-sim/core/models"
)

// Generator owns the per-task release state of one simulation run.
// It never fails: an always-ready task with an unserved previous job
// queues back-to-back jobs, which is the modeled behavior of real
// sensor polling, not an error.
type Generator struct {
	tasks       models.TaskSet
	nextRelease []int64 // periodic tasks: next release instant
	triggerIdx  []int   // event tasks: first unconsumed trigger
	outstanding []bool  // event tasks: an uncompleted job exists
	counts      []int   // per-task job numbering
	seq         int64   // global creation order
	rng         *rand.Rand
}

// New creates a generator for the task set. The seed drives the
// bounded execution-time jitter of monitoring-style tasks; the same
// seed always reproduces the same job stream.
func New(tasks models.TaskSet, seed int64) *Generator {
	return &Generator{
		tasks:       tasks,
		nextRelease: make([]int64, len(tasks)),
		triggerIdx:  make([]int, len(tasks)),
		outstanding: make([]bool, len(tasks)),
		counts:      make([]int, len(tasks)),
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Admit emits every job whose release condition is met at time t, in
// task set order, calling emit for each. Emitting inserts the job into
// the caller's ready set and touches no other job's state.
func (g *Generator) Admit(t int64, emit func(*models.Job)) {
	for i := range g.tasks {
		task := &g.tasks[i]
		if task.EventTriggered() {
			g.admitTriggered(i, task, t, emit)
			continue
		}
		for g.nextRelease[i] <= t {
			emit(g.newJob(i, task, g.nextRelease[i]))
			g.nextRelease[i] += task.Period
		}
	}
}

// admitTriggered releases one job if a trigger is pending and the
// previous job has completed. Triggers arriving while a job is still
// uncompleted are consumed and absorbed; they never fire retroactively.
func (g *Generator) admitTriggered(i int, task *models.TaskDescriptor, t int64, emit func(*models.Job)) {
	fired := false
	for g.triggerIdx[i] < len(task.TriggerTimes) && task.TriggerTimes[g.triggerIdx[i]] <= t {
		g.triggerIdx[i]++
		fired = true
	}
	if !fired || g.outstanding[i] {
		return
	}
	g.outstanding[i] = true
	emit(g.newJob(i, task, t))
}

// JobCompleted tells the generator a job of the given task finished,
// re-arming event-triggered release for that task.
func (g *Generator) JobCompleted(taskIndex int) {
	g.outstanding[taskIndex] = false
}

func (g *Generator) newJob(i int, task *models.TaskDescriptor, release int64) *models.Job {
	g.counts[i]++
	g.seq++
	exec := task.WCET
	if task.WCETJitter > 0 {
		exec += g.rng.Int63n(2*task.WCETJitter+1) - task.WCETJitter
	}
	return &models.Job{
		Task:             task,
		TaskIndex:        i,
		JobID:            g.counts[i],
		Seq:              g.seq,
		ReleaseTime:      release,
		AbsoluteDeadline: release + task.RelativeDeadline,
		ExecutionTime:    exec,
		RemainingTime:    exec,
		StartTime:        models.TimeUnset,
		FinishTime:       models.TimeUnset,
		State:            models.JobStateReady,
	}
}

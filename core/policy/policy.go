// Package policy implements the pluggable priority policies the engine
// consults at every scheduling decision point. Each policy is a total
// order over the ready set with an explicit tie-break chain, so two
// engines fed the same inputs produce bit-identical schedules.
package policy

import (
	"fmt"
	"strings"

	"sched-sim/core/models"
)

// Policy selects the highest-priority ready, uncompleted job.
// SelectNext must be a pure function of the slice contents; the only
// permitted hidden state is the static RM priority table.
type Policy interface {
	Name() string
	SelectNext(ready []*models.Job) *models.Job
}

// ForName returns the policy implementation for a policy name
// ("edf", "rm", "fifo"). RM needs the task set to build its static
// priority table.
func ForName(name string, taskSet models.TaskSet) (Policy, error) {
	switch strings.ToLower(name) {
	case "edf":
		return EDF{}, nil
	case "rm":
		return NewRM(taskSet), nil
	case "fifo":
		return FIFO{}, nil
	default:
		return nil, fmt.Errorf("unknown scheduling policy %q", name)
	}
}

// All returns one instance of every policy, in comparison-report order.
func All(taskSet models.TaskSet) []Policy {
	return []Policy{EDF{}, NewRM(taskSet), FIFO{}}
}

// EDF is Earliest Deadline First: the nearest absolute deadline runs
// first. Priority is dynamic; it changes as jobs are released mid-run.
// Ties break on release time, then task set index, then creation order.
type EDF struct{}

func (EDF) Name() string { return "EDF" }

func (EDF) SelectNext(ready []*models.Job) *models.Job {
	var best *models.Job
	for _, j := range ready {
		if best == nil || edfLess(j, best) {
			best = j
		}
	}
	return best
}

func edfLess(a, b *models.Job) bool {
	if a.AbsoluteDeadline != b.AbsoluteDeadline {
		return a.AbsoluteDeadline < b.AbsoluteDeadline
	}
	if a.ReleaseTime != b.ReleaseTime {
		return a.ReleaseTime < b.ReleaseTime
	}
	if a.TaskIndex != b.TaskIndex {
		return a.TaskIndex < b.TaskIndex
	}
	return a.Seq < b.Seq
}

// RM is Rate Monotonic: the shortest period runs first. Priorities are
// static, computed once per task at setup, and never change across a
// job's lifetime. Event-triggered tasks have no period; their relative
// deadline stands in as the minimum inter-arrival surrogate.
// Ties break on task set index, then creation order.
type RM struct {
	prio []int64 // per task set index
}

// NewRM builds the static priority table for the task set.
func NewRM(taskSet models.TaskSet) RM {
	prio := make([]int64, len(taskSet))
	for i := range taskSet {
		if taskSet[i].EventTriggered() {
			prio[i] = taskSet[i].RelativeDeadline
		} else {
			prio[i] = taskSet[i].Period
		}
	}
	return RM{prio: prio}
}

func (RM) Name() string { return "RM" }

func (p RM) SelectNext(ready []*models.Job) *models.Job {
	var best *models.Job
	for _, j := range ready {
		if best == nil || p.less(j, best) {
			best = j
		}
	}
	return best
}

func (p RM) less(a, b *models.Job) bool {
	if p.prio[a.TaskIndex] != p.prio[b.TaskIndex] {
		return p.prio[a.TaskIndex] < p.prio[b.TaskIndex]
	}
	if a.TaskIndex != b.TaskIndex {
		return a.TaskIndex < b.TaskIndex
	}
	return a.Seq < b.Seq
}

// FIFO orders by arrival only: earliest release first, ties by creation
// order. Because its key never changes and the running job always
// carries the smallest key, a dispatched job runs to completion.
type FIFO struct{}

func (FIFO) Name() string { return "FIFO" }

func (FIFO) SelectNext(ready []*models.Job) *models.Job {
	var best *models.Job
	for _, j := range ready {
		if best == nil || fifoLess(j, best) {
			best = j
		}
	}
	return best
}

func fifoLess(a, b *models.Job) bool {
	if a.ReleaseTime != b.ReleaseTime {
		return a.ReleaseTime < b.ReleaseTime
	}
	return a.Seq < b.Seq
}

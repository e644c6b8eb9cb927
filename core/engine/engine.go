// Package engine advances simulated time in discrete 1 ms steps over a
// single virtual processor, dispatching and preempting jobs according
// to the active priority policy. For a fixed task set, policy, and
// horizon the sequence of dispatch decisions is fully deterministic.
package engine

import (
	"sched-sim/core/generator"
	"sched-sim/core/metrics"
	"sched-sim/core/models"
	"sched-sim/core/policy"
)

// Result bundles everything a finished run produces: the per-job
// records, per-task statistics, and the overall summary.
type Result struct {
	Policy    string                  `json:"policy"`
	Horizon   int64                   `json:"horizon"`
	Seed      int64                   `json:"seed"`
	Records   []models.JobRecord      `json:"records"`
	TaskStats []models.TaskStatistics `json:"task_stats"`
	Summary   models.ComparisonSummary `json:"summary"`
}

// RunSimulation validates the task set and simulates it under the given
// policy until the horizon. Configuration errors surface immediately;
// overload never aborts a run, it only accumulates missed deadlines.
func RunSimulation(taskSet models.TaskSet, pol policy.Policy, horizon int64) (*Result, error) {
	return RunSimulationSeeded(taskSet, pol, horizon, 0)
}

// RunSimulationSeeded is RunSimulation with an explicit seed for the
// execution-time jitter of monitoring-style tasks. The same seed always
// yields byte-identical job records.
func RunSimulationSeeded(taskSet models.TaskSet, pol policy.Policy, horizon int64, seed int64) (*Result, error) {
	if err := taskSet.Validate(); err != nil {
		return nil, err
	}
	if horizon <= 0 {
		return nil, &models.ConfigurationError{Field: "horizon", Reason: "must be positive"}
	}

	e := &engine{
		policy:    pol,
		horizon:   horizon,
		gen:       generator.New(taskSet, seed),
		collector: metrics.NewCollector(),
	}
	e.run()

	return &Result{
		Policy:    pol.Name(),
		Horizon:   horizon,
		Seed:      seed,
		Records:   e.collector.Records(),
		TaskStats: e.collector.TaskStatistics(),
		Summary:   e.collector.Summary(pol.Name(), horizon),
	}, nil
}

// Compare runs all three policies over the identical task set and
// horizon. The release pattern is shared, so every run completes the
// same number of jobs; only miss counts and response times differ.
func Compare(taskSet models.TaskSet, horizon int64, seed int64) ([]*Result, error) {
	var results []*Result
	for _, pol := range policy.All(taskSet) {
		res, err := RunSimulationSeeded(taskSet, pol, horizon, seed)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// engine holds the only shared mutable state of a run: the ready set
// and the currently running job slot. Both are owned exclusively by
// the engine for its lifetime.
type engine struct {
	policy    policy.Policy
	horizon   int64
	gen       *generator.Generator
	ready     []*models.Job
	running   *models.Job
	collector *metrics.Collector
}

// run executes the time-stepped loop. Releases stop at the horizon;
// the backlog then drains so every policy completes the same job count.
func (e *engine) run() {
	for t := int64(0); t < e.horizon || len(e.ready) > 0 || e.running != nil; t++ {
		if t < e.horizon {
			e.gen.Admit(t, e.admit)
		}
		e.dispatch(t)
		if e.running == nil {
			continue // idle step
		}
		e.running.RemainingTime--
		if e.running.Completed() {
			e.complete(e.running, t+1)
			e.running = nil
		}
	}
}

func (e *engine) admit(j *models.Job) {
	e.ready = append(e.ready, j)
}

// dispatch re-evaluates the policy over the ready set including the
// running job. If the running job is no longer selected it is preempted
// back to the ready set with its remaining time unchanged.
func (e *engine) dispatch(t int64) {
	candidates := e.ready
	if e.running != nil {
		candidates = make([]*models.Job, 0, len(e.ready)+1)
		candidates = append(candidates, e.ready...)
		candidates = append(candidates, e.running)
	}

	next := e.policy.SelectNext(candidates)
	if next == nil || next == e.running {
		return
	}
	if e.running != nil {
		e.running.State = models.JobStateReady
		e.ready = append(e.ready, e.running)
	}
	e.removeReady(next)
	next.State = models.JobStateRunning
	if next.StartTime == models.TimeUnset {
		next.StartTime = t
	}
	e.running = next
}

func (e *engine) removeReady(j *models.Job) {
	for i, r := range e.ready {
		if r == j {
			e.ready = append(e.ready[:i], e.ready[i+1:]...)
			return
		}
	}
}

// complete transitions a job to Completed exactly once and hands it to
// the collector as an immutable record.
func (e *engine) complete(j *models.Job, now int64) {
	j.FinishTime = now
	j.State = models.JobStateCompleted
	e.collector.RecordCompletion(j)
	e.gen.JobCompleted(j.TaskIndex)
}

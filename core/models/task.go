package models

// TaskDescriptor holds the static timing parameters of one logical task.
// All durations are in simulated milliseconds. A descriptor is immutable
// once its task set has been validated.
type TaskDescriptor struct {
	Name             string
	Period           int64   // time between releases; 0 means event-triggered
	WCET             int64   // worst-case execution time per job
	RelativeDeadline int64   // deadline relative to release; may be < Period
	WCETJitter       int64   // optional bound on execution-time variation (monitoring-style tasks)
	TriggerTimes     []int64 // release instants for event-triggered tasks, ascending
}

// EventTriggered reports whether the task releases on external triggers
// instead of periodically.
func (t *TaskDescriptor) EventTriggered() bool {
	return t.Period == 0
}

// Utilization returns the fraction of CPU capacity the task demands.
// Event-triggered tasks contribute zero.
func (t *TaskDescriptor) Utilization() float64 {
	if t.Period <= 0 {
		return 0
	}
	return float64(t.WCET) / float64(t.Period)
}

// TaskSet is an ordered list of task descriptors. Order is significant:
// the set index is the final tie-break for scheduling decisions.
type TaskSet []TaskDescriptor

// Validate rejects malformed descriptors before a simulation starts.
// Non-positive WCET or deadline, a negative period, a duplicate name,
// or unordered trigger times are configuration errors.
func (ts TaskSet) Validate() error {
	if len(ts) == 0 {
		return &ConfigurationError{Reason: "task set is empty"}
	}
	seen := make(map[string]bool, len(ts))
	for i := range ts {
		t := &ts[i]
		if t.Name == "" {
			return &ConfigurationError{Reason: "task name is empty"}
		}
		if seen[t.Name] {
			return &ConfigurationError{Task: t.Name, Reason: "duplicate task name"}
		}
		seen[t.Name] = true
		if t.Period < 0 {
			return &ConfigurationError{Task: t.Name, Field: "period", Reason: "must not be negative"}
		}
		if t.WCET <= 0 {
			return &ConfigurationError{Task: t.Name, Field: "wcet", Reason: "must be positive"}
		}
		if t.RelativeDeadline <= 0 {
			return &ConfigurationError{Task: t.Name, Field: "deadline", Reason: "must be positive"}
		}
		if t.WCETJitter < 0 || t.WCETJitter >= t.WCET {
			return &ConfigurationError{Task: t.Name, Field: "wcet_jitter", Reason: "must be non-negative and smaller than wcet"}
		}
		for j := 1; j < len(t.TriggerTimes); j++ {
			if t.TriggerTimes[j] <= t.TriggerTimes[j-1] {
				return &ConfigurationError{Task: t.Name, Field: "triggers", Reason: "must be strictly ascending"}
			}
		}
	}
	return nil
}

// Utilization returns the total demanded CPU fraction of the set.
// A value above 1.0 is an overload condition, reported via statistics
// rather than rejected.
func (ts TaskSet) Utilization() float64 {
	total := 0.0
	for i := range ts {
		total += ts[i].Utilization()
	}
	return total
}

// ByName returns the descriptor with the given name, or nil.
func (ts TaskSet) ByName(name string) *TaskDescriptor {
	for i := range ts {
		if ts[i].Name == name {
			return &ts[i]
		}
	}
	return nil
}

package models

// TimeUnset marks a start or finish time that has not occurred yet.
const TimeUnset int64 = -1

// JobState represents where a job is in its lifecycle.
type JobState string

const (
	JobStateReady     JobState = "ready"
	JobStateRunning   JobState = "running"
	JobStateCompleted JobState = "completed"
)

// Job is one released instance of a task. It is owned by the engine's
// ready set until completion; afterwards only its immutable record
// survives.
type Job struct {
	Task             *TaskDescriptor
	TaskIndex        int   // index of the task in the task set
	JobID            int   // monotonically increasing per task, starting at 1
	Seq              int64 // global creation order, final tie-break
	ReleaseTime      int64
	AbsoluteDeadline int64
	ExecutionTime    int64 // processing required; WCET unless jitter applies
	RemainingTime    int64
	StartTime        int64 // TimeUnset until first dispatched
	FinishTime       int64 // TimeUnset until completed
	State            JobState
}

// Completed reports whether the job has consumed all its processing time.
func (j *Job) Completed() bool {
	return j.RemainingTime == 0
}

// Missed reports whether the job finished after its absolute deadline.
// Meaningful only once the job has completed.
func (j *Job) Missed() bool {
	return j.FinishTime != TimeUnset && j.FinishTime > j.AbsoluteDeadline
}

// Record freezes a completed job into its immutable flat record.
func (j *Job) Record() JobRecord {
	rec := JobRecord{
		TaskName:         j.Task.Name,
		JobID:            j.JobID,
		ReleaseTime:      j.ReleaseTime,
		StartTime:        j.StartTime,
		FinishTime:       j.FinishTime,
		AbsoluteDeadline: j.AbsoluteDeadline,
		ProcessingTime:   j.ExecutionTime,
		Missed:           j.Missed(),
	}
	rec.ResponseTime = j.FinishTime - j.ReleaseTime
	rec.WaitingTime = rec.ResponseTime - rec.ProcessingTime
	if j.FinishTime > j.AbsoluteDeadline {
		rec.Tardiness = j.FinishTime - j.AbsoluteDeadline
	}
	return rec
}

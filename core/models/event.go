package models

// FeedEventType distinguishes the two messages of the external feed
// protocol spoken by the physical sensor node.
type FeedEventType string

const (
	// FeedEventRelease announces a job release:
	// EVENT name=<task> job=<id> rel=<t0> start=<t1> dl=<deadline>
	FeedEventRelease FeedEventType = "EVENT"
	// FeedEventDone announces a job completion:
	// DONE name=<task> job=<id> end=<t2> val=<reading>
	FeedEventDone FeedEventType = "DONE"
)

// FeedEvent is one decoded line of the external event feed.
type FeedEvent struct {
	Type     FeedEventType
	TaskName string
	JobID    int

	// Release fields (Type == FeedEventRelease)
	ReleaseTime      int64
	StartTime        int64
	AbsoluteDeadline int64

	// Completion fields (Type == FeedEventDone)
	FinishTime int64
	Value      int64
}

package feed

import (
	"fmt"
	"log"
	"sync"

	"sched-sim/core/metrics"
	"sched-sim/core/models"
)

// RecordSink receives every successfully folded job record, in addition
// to the collector. Sink failures are logged and never block folding.
type RecordSink interface {
	Record(rec models.JobRecord) error
}

// Folder matches EVENT/DONE pairs from the external feed and turns them
// into job records. Events referring to unknown tasks or carrying
// out-of-order timestamps are dropped; the run is never stopped.
type Folder struct {
	mu        sync.Mutex
	tasks     models.TaskSet
	pending   map[string]*models.FeedEvent // keyed by task/job
	collector *metrics.Collector
	sinks     []RecordSink
	dropped   int
}

// NewFolder creates a folder validating against the given task set and
// feeding completed jobs into the collector.
func NewFolder(tasks models.TaskSet, collector *metrics.Collector) *Folder {
	return &Folder{
		tasks:     tasks,
		pending:   make(map[string]*models.FeedEvent),
		collector: collector,
	}
}

// Fold applies one decoded event. A non-nil error means the event was
// dropped as malformed; folding always continues afterwards.
func (f *Folder) Fold(ev *models.FeedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.tasks.ByName(ev.TaskName) == nil {
		return f.drop(ev, "unknown task name")
	}
	key := jobKey(ev.TaskName, ev.JobID)

	switch ev.Type {
	case models.FeedEventRelease:
		if ev.StartTime < ev.ReleaseTime || ev.AbsoluteDeadline < ev.ReleaseTime {
			return f.drop(ev, "out-of-order timestamps")
		}
		if _, exists := f.pending[key]; exists {
			return f.drop(ev, "duplicate release")
		}
		f.pending[key] = ev
		return nil

	case models.FeedEventDone:
		rel, ok := f.pending[key]
		if !ok {
			return f.drop(ev, "completion without release")
		}
		if ev.FinishTime < rel.StartTime {
			return f.drop(ev, "out-of-order timestamps")
		}
		delete(f.pending, key)
		rec := buildRecord(rel, ev)
		f.collector.Record(rec)
		for _, s := range f.sinks {
			if err := s.Record(rec); err != nil {
				log.Printf("feed sink failed for %s job %d: %v", rec.TaskName, rec.JobID, err)
			}
		}
		return nil

	default:
		return f.drop(ev, "unknown event type")
	}
}

// AddSink registers an additional destination for folded records, such
// as a database repository.
func (f *Folder) AddSink(s RecordSink) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks = append(f.sinks, s)
}

// Collector returns the collector live records are folded into.
func (f *Folder) Collector() *metrics.Collector {
	return f.collector
}

// Dropped returns how many malformed events were discarded so far.
func (f *Folder) Dropped() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dropped
}

func (f *Folder) drop(ev *models.FeedEvent, reason string) error {
	f.dropped++
	return &models.MalformedEventError{
		Line:   fmt.Sprintf("%s %s job=%d", ev.Type, ev.TaskName, ev.JobID),
		Reason: reason,
	}
}

// buildRecord derives the timing fields from the reported tuple alone;
// the local task descriptor is never consulted for processing time.
func buildRecord(rel, done *models.FeedEvent) models.JobRecord {
	rec := models.JobRecord{
		TaskName:         rel.TaskName,
		JobID:            rel.JobID,
		ReleaseTime:      rel.ReleaseTime,
		StartTime:        rel.StartTime,
		FinishTime:       done.FinishTime,
		AbsoluteDeadline: rel.AbsoluteDeadline,
		Value:            done.Value,
	}
	rec.ResponseTime = rec.FinishTime - rec.ReleaseTime
	rec.WaitingTime = rec.StartTime - rec.ReleaseTime
	rec.ProcessingTime = rec.FinishTime - rec.StartTime
	if rec.FinishTime > rec.AbsoluteDeadline {
		rec.Tardiness = rec.FinishTime - rec.AbsoluteDeadline
		rec.Missed = true
	}
	return rec
}

func jobKey(task string, jobID int) string {
	return fmt.Sprintf("%s/%d", task, jobID)
}

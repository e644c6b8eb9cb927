// Package feed accepts the line-oriented event protocol emitted by the
// physical sensor node and folds the reported jobs into the same
// metrics model as internally simulated jobs.
package feed

import (
	"regexp"
	"strconv"
	"strings"

	"sched-sim/core/models"
)

var (
	eventRe = regexp.MustCompile(`^EVENT name=(\w+) job=(\d+) rel=(\d+) start=(\d+) dl=(\d+)$`)
	doneRe  = regexp.MustCompile(`^DONE name=(\w+) job=(\d+) end=(\d+) val=(-?\d+)$`)
)

// ParseLine decodes one protocol line. Blank lines yield (nil, nil);
// anything else that does not match the protocol is a malformed event.
func ParseLine(line string) (*models.FeedEvent, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	if m := eventRe.FindStringSubmatch(line); m != nil {
		ev := &models.FeedEvent{Type: models.FeedEventRelease, TaskName: m[1]}
		ev.JobID = atoi(m[2])
		ev.ReleaseTime = atoi64(m[3])
		ev.StartTime = atoi64(m[4])
		ev.AbsoluteDeadline = atoi64(m[5])
		return ev, nil
	}
	if m := doneRe.FindStringSubmatch(line); m != nil {
		ev := &models.FeedEvent{Type: models.FeedEventDone, TaskName: m[1]}
		ev.JobID = atoi(m[2])
		ev.FinishTime = atoi64(m[3])
		ev.Value = atoi64(m[4])
		return ev, nil
	}
	return nil, &models.MalformedEventError{Line: line, Reason: "unrecognized protocol line"}
}

// atoi and atoi64 never fail on regexp-validated digit groups.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

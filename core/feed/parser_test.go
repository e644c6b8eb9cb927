package feed

import (
	"testing"

	"sched-sim/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineRelease(t *testing.T) {
	ev, err := ParseLine("EVENT name=Ultra job=12 rel=2400 start=2405 dl=2500")
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, models.FeedEventRelease, ev.Type)
	assert.Equal(t, "Ultra", ev.TaskName)
	assert.Equal(t, 12, ev.JobID)
	assert.Equal(t, int64(2400), ev.ReleaseTime)
	assert.Equal(t, int64(2405), ev.StartTime)
	assert.Equal(t, int64(2500), ev.AbsoluteDeadline)
}

func TestParseLineDone(t *testing.T) {
	ev, err := ParseLine("DONE name=Sound job=3 end=7200 val=512")
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.Equal(t, models.FeedEventDone, ev.Type)
	assert.Equal(t, "Sound", ev.TaskName)
	assert.Equal(t, 3, ev.JobID)
	assert.Equal(t, int64(7200), ev.FinishTime)
	assert.Equal(t, int64(512), ev.Value)
}

func TestParseLineBlank(t *testing.T) {
	ev, err := ParseLine("   \r\n")
	assert.NoError(t, err)
	assert.Nil(t, ev)
}

func TestParseLineMalformed(t *testing.T) {
	lines := []string{
		"EVENT name=Ultra job=12",                       // truncated
		"DONE name=Sound job=x end=7200 val=512",        // non-numeric id
		"PING name=Ultra job=1 rel=0 start=0 dl=100",    // unknown verb
		"EVENT name=Ultra job=1 rel=a start=b dl=c",     // non-numeric times
	}
	for _, line := range lines {
		ev, err := ParseLine(line)
		assert.Nil(t, ev, line)
		var malformed *models.MalformedEventError
		require.ErrorAs(t, err, &malformed, line)
	}
}

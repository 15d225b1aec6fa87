package playback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

func event(time uint64, pitch uint8) contracts.Event {
	return contracts.Event{Time: time, Pitch: pitch}
}

func TestScoreTimeAt(t *testing.T) {
	anchor := Anchor{ReferenceTime: 1000, LiveTime: 2000, Stretch: 2.0}

	// 500ms of live time at half speed is 250ms of score time.
	got, err := anchor.ScoreTimeAt(2500)
	require.NoError(t, err)
	require.Equal(t, uint64(1250), got)

	_, err = anchor.ScoreTimeAt(1999)
	require.ErrorIs(t, err, ErrTimeBeforeAnchor)
}

func TestTickReleasesDueEvents(t *testing.T) {
	sched := NewScheduler([]contracts.Event{
		event(0, 60), event(500, 62), event(1000, 64),
	})
	anchor := Anchor{ReferenceTime: 0, LiveTime: 0, Stretch: 1.0}

	due, wait, err := sched.Tick(anchor, 600)
	require.NoError(t, err)
	require.Equal(t, []contracts.Event{event(0, 60), event(500, 62)}, due)
	// 400ms of score time until the next event at unit stretch.
	require.Equal(t, 400*time.Millisecond, wait)
	require.Equal(t, 2, sched.Head())
	require.False(t, sched.Done())
}

func TestTickStretchesWait(t *testing.T) {
	sched := NewScheduler([]contracts.Event{event(1000, 60)})
	// Performance at half tempo: 500ms of score distance takes 1000ms.
	anchor := Anchor{ReferenceTime: 0, LiveTime: 0, Stretch: 2.0}

	due, wait, err := sched.Tick(anchor, 1000) // score time = 500
	require.NoError(t, err)
	require.Empty(t, due)
	require.Equal(t, time.Second, wait)
}

func TestTickMinimumWait(t *testing.T) {
	sched := NewScheduler([]contracts.Event{event(100, 60), event(101, 62)})
	anchor := Anchor{ReferenceTime: 0, LiveTime: 0, Stretch: 1.0}

	due, wait, err := sched.Tick(anchor, 100)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, 10*time.Millisecond, wait)
}

func TestTickAfterCompletionIdles(t *testing.T) {
	sched := NewScheduler([]contracts.Event{event(0, 60)})
	anchor := Anchor{ReferenceTime: 0, LiveTime: 0, Stretch: 1.0}

	due, wait, err := sched.Tick(anchor, 50)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, time.Second, wait)
	require.True(t, sched.Done())

	due, wait, err = sched.Tick(anchor, 100)
	require.NoError(t, err)
	require.Empty(t, due)
	require.Equal(t, time.Second, wait)
}

func TestAnchorFrom(t *testing.T) {
	result := contracts.AlignmentResult{ReferenceTime: 500, Stretch: 1.5}
	anchor := AnchorFrom(result, 760)
	require.Equal(t, Anchor{ReferenceTime: 500, LiveTime: 760, Stretch: 1.5}, anchor)
}

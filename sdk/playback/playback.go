// Package playback schedules the events of a second score so they can be
// forwarded in sync with a tracked live performance. The scheduler is a
// pure computation: callers ask which events are due at the estimated
// score time and how long to sleep before asking again; actually sounding
// the events is their concern.
package playback

import (
	"errors"
	"time"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

const (
	// minWait bounds how quickly a caller may poll when the playback head
	// is running behind the estimated score position.
	minWait = 10 * time.Millisecond
	// idleWait is used when nothing is scheduled: before the first match
	// or after the playback score has ended.
	idleWait = time.Second
)

// ErrTimeBeforeAnchor is returned when the supplied wall time precedes the
// anchor's live timestamp, which would make the elapsed time negative.
var ErrTimeBeforeAnchor = errors.New("current time is earlier than the anchored match")

// Anchor pins the live timeline to the score timeline at the most recent
// match: at live time LiveTime the performer was at score time
// ReferenceTime, moving at Stretch times the reference tempo.
type Anchor struct {
	ReferenceTime uint64
	LiveTime      uint64
	Stretch       float64
}

// AnchorFrom builds an Anchor from an alignment result and the live
// timestamp of the matched event.
func AnchorFrom(result contracts.AlignmentResult, liveTime uint64) Anchor {
	return Anchor{
		ReferenceTime: result.ReferenceTime,
		LiveTime:      liveTime,
		Stretch:       result.Stretch,
	}
}

// ScoreTimeAt estimates the current score position: elapsed live time is
// divided by the stretch factor and added to the anchored score time.
func (a Anchor) ScoreTimeAt(nowMS uint64) (uint64, error) {
	if nowMS < a.LiveTime {
		return 0, ErrTimeBeforeAnchor
	}
	elapsed := float64(nowMS-a.LiveTime) / a.Stretch
	return a.ReferenceTime + uint64(elapsed), nil
}

// Scheduler walks a time-ordered event sequence, releasing events as the
// estimated score position passes them. The head only moves forward.
type Scheduler struct {
	score []contracts.Event
	head  int
}

// NewScheduler creates a scheduler over the given playback events.
func NewScheduler(events []contracts.Event) *Scheduler {
	return &Scheduler{score: events}
}

// Head returns the index of the next unplayed event.
func (s *Scheduler) Head() int {
	return s.head
}

// Done reports whether every playback event has been released.
func (s *Scheduler) Done() bool {
	return s.head >= len(s.score)
}

// Tick releases all events due at the estimated score time for the given
// anchor and wall time, and returns how long the caller should wait
// before the next tick. The wait is stretched back into wall time so a
// slow performance polls less often.
func (s *Scheduler) Tick(anchor Anchor, nowMS uint64) ([]contracts.Event, time.Duration, error) {
	if s.Done() {
		return nil, idleWait, nil
	}
	scoreTime, err := anchor.ScoreTimeAt(nowMS)
	if err != nil {
		return nil, 0, err
	}

	var due []contracts.Event
	for s.head < len(s.score) && s.score[s.head].Time <= scoreTime {
		due = append(due, s.score[s.head])
		s.head++
	}

	if s.Done() {
		return due, idleWait, nil
	}
	wait := time.Duration(float64(s.score[s.head].Time-scoreTime)*anchor.Stretch) * time.Millisecond
	if wait < minWait {
		wait = minWait
	}
	return due, wait, nil
}

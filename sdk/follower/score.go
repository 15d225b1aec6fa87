// Package follower implements real-time alignment of a live stream of
// pitched events against a fixed reference score, estimating the
// performer's current position and local tempo ratio.
package follower

import (
	"errors"
	"fmt"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// Error definitions for score construction and live input validation.
var (
	ErrEmptyScore     = errors.New("reference score has no events")
	ErrUnorderedScore = errors.New("reference score timestamps must be non-decreasing")
	ErrInputOrdering  = errors.New("live event timestamp earlier than its predecessor")
)

// Score is an immutable, time-ordered reference sequence of events. It is
// built once from an external extractor and may be shared read-only across
// any number of concurrent sessions.
type Score struct {
	events []contracts.Event
}

// NewScore validates and copies the given events into a Score. A score
// with zero events is rejected (nothing to align to), as is any sequence
// whose timestamps decrease.
func NewScore(events []contracts.Event) (*Score, error) {
	if len(events) == 0 {
		return nil, ErrEmptyScore
	}
	for i := 1; i < len(events); i++ {
		if events[i].Time < events[i-1].Time {
			return nil, fmt.Errorf("%w: index %d (%dms) after %dms",
				ErrUnorderedScore, i, events[i].Time, events[i-1].Time)
		}
	}
	copied := make([]contracts.Event, len(events))
	copy(copied, events)
	return &Score{events: copied}, nil
}

// Len returns the number of events in the score.
func (s *Score) Len() int {
	return len(s.events)
}

// At returns the event at index i.
func (s *Score) At(i int) contracts.Event {
	return s.events[i]
}

// Events returns the underlying event sequence. Callers must treat the
// returned slice as read-only.
func (s *Score) Events() []contracts.Event {
	return s.events
}

// findPitch returns the first index in [from, to] whose pitch equals the
// given pitch, or -1 when there is none. The upper bound is clipped to the
// end of the score.
func (s *Score) findPitch(from, to int, pitch uint8) int {
	if to > len(s.events)-1 {
		to = len(s.events) - 1
	}
	for i := from; i <= to; i++ {
		if s.events[i].Pitch == pitch {
			return i
		}
	}
	return -1
}

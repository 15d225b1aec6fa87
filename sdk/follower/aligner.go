package follower

import (
	"fmt"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// Aligner matches incoming live events against the next expected notes of
// a reference score. It carries no state of its own: each Step call takes
// the previous MatchState and returns its successor, so the same Aligner
// value can serve any number of independent sessions.
//
// With Window == 0 the matching is strict: only the exact next reference
// pitch is ever accepted, wrong and extra notes are tolerated indefinitely,
// but a note missing from the performance stalls matching forever. A
// positive Window allows recovery from missed notes by searching up to
// Window positions ahead in the score, at the cost of a false-match risk
// where pitches repeat.
//
// Example (strict), matching live input against a score:
//
//	score index:  0   1  2  3
//	score:        C   D  E  F   expected notes
//	live notes:   C   D  x  E   actually played (x = wrong note)
//
// C and D match indices 0 and 1, x is ignored, and E matches index 2 with
// x reported in the Ignored list of E's result.
type Aligner struct {
	// Window is the forward search distance in score indices. 0 = strict.
	Window int
	// MinStretch and MaxStretch bound the tempo estimate. Values computed
	// outside the range are clamped and the result flagged as suspect.
	// Zero values fall back to the contract defaults.
	MinStretch float64
	MaxStretch float64
}

// Step processes the live events at indices [from, len(live)) in arrival
// order against the score, threading the previous state through to the
// next one. One result is emitted per matched event; rejected events
// accumulate into the state's pending list instead. State indices never
// decrease across calls.
//
// Events arriving out of timestamp order reject the whole call with
// ErrInputOrdering and leave the state untouched: ordering is the
// transport's responsibility and is never silently repaired here.
func (a Aligner) Step(score *Score, live []contracts.Event, from int, state MatchState) (MatchState, []contracts.AlignmentResult, error) {
	for i := from; i < len(live); i++ {
		if i > 0 && live[i].Time < live[i-1].Time {
			return state, nil, fmt.Errorf("%w: event %d at %dms after %dms",
				ErrInputOrdering, i, live[i].Time, live[i-1].Time)
		}
	}

	var results []contracts.AlignmentResult
	for i := from; i < len(live); i++ {
		event := live[i]
		if state.ScoreIndex == score.Len()-1 {
			// Score exhausted: trailing input is counted, never stored.
			state.Trailing++
			continue
		}
		candidate := state.ScoreIndex + 1
		k := score.findPitch(candidate, candidate+a.Window, event.Pitch)
		if k < 0 {
			state.Pending = append(state.Pending, event)
			continue
		}

		var skipped []contracts.Event
		if k > candidate {
			skipped = make([]contracts.Event, k-candidate)
			copy(skipped, score.Events()[candidate:k])
		}
		stretch, suspect := a.stretchAt(score, live, state, k, event)

		state.ScoreIndex = k
		state.LiveIndex = i
		state.Stretch = stretch
		results = append(results, contracts.AlignmentResult{
			ReferenceTime: score.At(k).Time,
			ScoreIndex:    k,
			LiveIndex:     i,
			Stretch:       stretch,
			Suspect:       suspect,
			Ignored:       state.Pending,
			Skipped:       skipped,
		})
		state.Pending = nil
	}
	return state, results, nil
}

// stretchAt recomputes the tempo estimate for a match of the given live
// event at score index k: the ratio of the performed inter-onset interval
// to the reference one. When there is no previous match, or the reference
// interval is zero (simultaneous reference notes), the previous estimate
// is retained rather than dividing.
func (a Aligner) stretchAt(score *Score, live []contracts.Event, state MatchState, k int, event contracts.Event) (float64, bool) {
	if !state.Matched() {
		return state.Stretch, false
	}
	elapsedRef := score.At(k).Time - score.At(state.ScoreIndex).Time
	if elapsedRef == 0 {
		return state.Stretch, false
	}
	elapsedLive := event.Time - live[state.LiveIndex].Time
	return a.clamp(float64(elapsedLive) / float64(elapsedRef))
}

// clamp bounds a freshly computed stretch factor. An out-of-range value
// indicates a spurious match or performance anomaly; the stored estimate
// is clamped and the match reported as suspect, but position tracking
// continues regardless.
func (a Aligner) clamp(stretch float64) (float64, bool) {
	min, max := a.MinStretch, a.MaxStretch
	if min <= 0 {
		min = contracts.DefaultMinStretch
	}
	if max <= 0 {
		max = contracts.DefaultMaxStretch
	}
	switch {
	case stretch < min:
		return min, true
	case stretch > max:
		return max, true
	}
	return stretch, false
}

package follower

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// Phase identifies where a session is in its lifecycle.
type Phase int

const (
	// PhaseAwaitingFirstMatch means no live event has matched yet; input
	// is only compared against the start of the score.
	PhaseAwaitingFirstMatch Phase = iota
	// PhaseTracking means at least one match has occurred.
	PhaseTracking
	// PhaseExhausted means the last reference event has been matched.
	// Further input is accepted but classified as trailing; no more
	// results are emitted. Exhausted is terminal: tracking the same score
	// again requires a new session.
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingFirstMatch:
		return "awaiting-first-match"
	case PhaseTracking:
		return "tracking"
	case PhaseExhausted:
		return "exhausted"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// ErrNilScore is returned when a session is created without a score.
var ErrNilScore = errors.New("session requires a reference score")

// Session owns the mutable alignment state for one live performance
// against one score: the append-only live input, the match state, and the
// registered result sinks. A session must be driven from a single
// goroutine; concurrent Feed calls are a caller error. The score itself is
// immutable and may be shared with other sessions.
type Session struct {
	logger  contracts.Logger
	aligner Aligner
	score   *Score
	sinks   []contracts.ResultSink
	live    []contracts.Event
	state   MatchState
}

// NewSession creates a session tracking the given score. Options configure
// the matching window, stretch bounds, logger and result sinks.
func NewSession(score *Score, opts ...contracts.Option) (*Session, error) {
	if score == nil {
		return nil, ErrNilScore
	}
	options := applyDefaultOptions(opts...)
	return &Session{
		logger: options.Logger,
		aligner: Aligner{
			Window:     options.Window,
			MinStretch: options.MinStretch,
			MaxStretch: options.MaxStretch,
		},
		score: score,
		sinks: options.Sinks,
		state: NewMatchState(),
	}, nil
}

// Feed appends newly arrived events to the live input and runs one
// alignment step over them, publishing each result to the registered
// sinks. The events must not be older than anything already appended;
// otherwise the whole call is rejected with ErrInputOrdering and no state
// changes.
func (s *Session) Feed(events ...contracts.Event) ([]contracts.AlignmentResult, error) {
	if len(events) == 0 {
		return nil, nil
	}
	last := uint64(0)
	if n := len(s.live); n > 0 {
		last = s.live[n-1].Time
	}
	for i, event := range events {
		if event.Time < last {
			return nil, fmt.Errorf("%w: batch event %d at %dms after %dms",
				ErrInputOrdering, i, event.Time, last)
		}
		last = event.Time
	}

	from := len(s.live)
	s.live = append(s.live, events...)
	state, results, err := s.aligner.Step(s.score, s.live, from, s.state)
	if err != nil {
		return nil, err
	}
	s.state = state

	for _, result := range results {
		s.logger.Debug("matched",
			zap.Int("scoreIndex", result.ScoreIndex),
			zap.Int("liveIndex", result.LiveIndex),
			zap.Uint64("referenceTimeMS", result.ReferenceTime),
			zap.Float64("stretch", result.Stretch),
			zap.Bool("suspect", result.Suspect),
			zap.Int("ignored", len(result.Ignored)),
			zap.Int("skipped", len(result.Skipped)))
		for _, sink := range s.sinks {
			sink.Emit(result)
		}
	}
	return results, nil
}

// Run consumes events from the channel until it is closed or the context
// is cancelled, feeding each event through the aligner. This is the
// intended transport boundary: a single ordered channel into a single
// consumer loop that owns the match state. Events violating timestamp
// ordering are dropped with a warning; the performance itself never aborts
// the loop.
func (s *Session) Run(ctx context.Context, events <-chan contracts.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := s.Feed(event); err != nil {
				s.logger.Warn("dropping out-of-order live event",
					zap.Uint64("timeMS", event.Time),
					zap.Uint8("pitch", event.Pitch),
					zap.Error(err))
			}
		}
	}
}

// Phase returns the session's current lifecycle phase.
func (s *Session) Phase() Phase {
	switch {
	case !s.state.Matched():
		return PhaseAwaitingFirstMatch
	case s.state.ScoreIndex == s.score.Len()-1:
		return PhaseExhausted
	}
	return PhaseTracking
}

// State returns a snapshot of the current match state. The pending list is
// copied so callers cannot alias the session's internal slice.
func (s *Session) State() MatchState {
	snapshot := s.state
	if len(s.state.Pending) > 0 {
		snapshot.Pending = make([]contracts.Event, len(s.state.Pending))
		copy(snapshot.Pending, s.state.Pending)
	}
	return snapshot
}

// Score returns the reference score this session tracks.
func (s *Session) Score() *Score {
	return s.score
}

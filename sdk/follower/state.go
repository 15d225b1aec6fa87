package follower

import "github.com/leandrodaf/scorefollow/sdk/contracts"

// MatchState is the state carried between successive alignment steps. It is
// exclusively owned by the session driving the aligner; nothing in it is
// shared across sessions.
type MatchState struct {
	// ScoreIndex is the index of the last matched reference event, or -1
	// before the first match.
	ScoreIndex int
	// LiveIndex is the index of the last matched live event, or -1 before
	// the first match.
	LiveIndex int
	// Stretch is the current tempo estimate, always positive.
	Stretch float64
	// Pending holds the live events rejected since the last match. They
	// become the Ignored list of the next result.
	Pending []contracts.Event
	// Trailing counts live events received after the score was exhausted.
	Trailing int
}

// NewMatchState returns the initial state of a session: no matches yet and
// a neutral stretch factor of 1.0.
func NewMatchState() MatchState {
	return MatchState{ScoreIndex: -1, LiveIndex: -1, Stretch: 1.0}
}

// Matched reports whether at least one match has occurred.
func (m MatchState) Matched() bool {
	return m.ScoreIndex >= 0
}

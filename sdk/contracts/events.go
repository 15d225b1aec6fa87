package contracts

// Event is a single pitched onset, the atomic unit of both the reference
// score and the live performance stream.
type Event struct {
	Time  uint64 // Time is the onset timestamp in milliseconds.
	Pitch uint8  // Pitch is the MIDI note number (0-127).
}

// AlignmentResult reports one matching decision made by the aligner.
// Input events rejected between two matches accumulate into the Ignored
// list of the next result instead of producing results of their own.
type AlignmentResult struct {
	// ReferenceTime is the timestamp of the matched reference event, in
	// milliseconds of score time.
	ReferenceTime uint64
	// ScoreIndex is the index of the matched event in the reference score.
	ScoreIndex int
	// LiveIndex is the index of the matched event in the live input.
	LiveIndex int
	// Stretch is the tempo estimate at this match: the ratio of performed
	// to reference inter-onset intervals.
	Stretch float64
	// Suspect is set when the computed stretch factor fell outside the
	// configured bounds and was clamped. The match itself still stands;
	// consumers may discount the tempo estimate.
	Suspect bool
	// Ignored lists the live events rejected since the previous match.
	Ignored []Event
	// Skipped lists the reference events bypassed by windowed recovery
	// after a missed note. Skipped notes belong to the score, not the
	// performance, and are reported for diagnostics only.
	Skipped []Event
}

// ResultSink consumes alignment results. Position displays, event
// forwarders and playback drivers all satisfy this single-method
// interface independently.
type ResultSink interface {
	Emit(result AlignmentResult)
}

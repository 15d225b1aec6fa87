package emitter

import (
	"fmt"
	"io"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
	"github.com/leandrodaf/scorefollow/sdk/follower"
)

// LineForwarder writes each matched reference event as a "timestamp pitch"
// line, the same wire encoding the stream transports consume, so one
// follower's output can feed another process directly.
type LineForwarder struct {
	w     io.Writer
	score *follower.Score
}

// NewLineForwarder creates a forwarder writing to w for the given score.
func NewLineForwarder(w io.Writer, score *follower.Score) *LineForwarder {
	return &LineForwarder{w: w, score: score}
}

func (f *LineForwarder) Emit(result contracts.AlignmentResult) {
	fmt.Fprintf(f.w, "%d %d\n", result.ReferenceTime, f.score.At(result.ScoreIndex).Pitch)
}

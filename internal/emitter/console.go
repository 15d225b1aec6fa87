// Package emitter provides ResultSink implementations for rendering and
// forwarding alignment results.
package emitter

import (
	"fmt"
	"io"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
	"github.com/leandrodaf/scorefollow/sdk/follower"
)

// Console renders alignment results as a running position display: one
// line per match with the score position and tempo, plus any ignored or
// skipped notes and the next expected note.
type Console struct {
	w     io.Writer
	score *follower.Score
}

// NewConsole creates a console display writing to w for the given score.
func NewConsole(w io.Writer, score *follower.Score) *Console {
	return &Console{w: w, score: score}
}

func (c *Console) Emit(result contracts.AlignmentResult) {
	suspect := ""
	if result.Suspect {
		suspect = " (suspect)"
	}
	pitch := c.score.At(result.ScoreIndex).Pitch
	fmt.Fprintf(c.w, "score %3d %7.3fs %-4s %3.0f%% tempo%s\n",
		result.ScoreIndex,
		float64(result.ReferenceTime)/1000,
		follower.PitchName(pitch),
		result.Stretch*100,
		suspect)
	for _, ignored := range result.Ignored {
		fmt.Fprintf(c.w, "  ignored %7.3fs %s\n",
			float64(ignored.Time)/1000, follower.PitchName(ignored.Pitch))
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(c.w, "  skipped %7.3fs %s\n",
			float64(skipped.Time)/1000, follower.PitchName(skipped.Pitch))
	}
	if next := result.ScoreIndex + 1; next < c.score.Len() {
		fmt.Fprintf(c.w, "  expect %3d %7.3fs %s\n",
			next,
			float64(c.score.At(next).Time)/1000,
			follower.PitchName(c.score.At(next).Pitch))
	}
}

package follower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

func TestNewScoreRejectsEmpty(t *testing.T) {
	_, err := NewScore(nil)
	require.ErrorIs(t, err, ErrEmptyScore)
}

func TestNewScoreRejectsUnordered(t *testing.T) {
	_, err := NewScore([]contracts.Event{note(100, 60), note(50, 62)})
	require.ErrorIs(t, err, ErrUnorderedScore)
}

func TestNewScoreAllowsEqualTimestamps(t *testing.T) {
	score, err := NewScore([]contracts.Event{note(0, 60), note(0, 64), note(10, 62)})
	require.NoError(t, err)
	require.Equal(t, 3, score.Len())
}

func TestNewScoreCopiesInput(t *testing.T) {
	events := []contracts.Event{note(0, 60), note(10, 62)}
	score, err := NewScore(events)
	require.NoError(t, err)

	events[0].Pitch = 99
	require.Equal(t, uint8(60), score.At(0).Pitch)
}

func TestFindPitchClipsToScoreEnd(t *testing.T) {
	score := mustScore(t, note(0, 60), note(10, 62))
	require.Equal(t, 1, score.findPitch(0, 100, 62))
	require.Equal(t, -1, score.findPitch(0, 100, 99))
	require.Equal(t, -1, score.findPitch(1, 1, 60))
}

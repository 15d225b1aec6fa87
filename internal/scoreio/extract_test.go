package scoreio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// writeSMF builds an in-memory single-track MIDI file at 120 BPM with a
// resolution of 960 ticks per quarter note, so 960 ticks = 500ms.
func writeSMF(t *testing.T, build func(tr *smf.Track)) *bytes.Reader {
	t.Helper()
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	build(&tr)
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	require.NoError(t, s.Add(tr))

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestExtractNoteOns(t *testing.T) {
	rd := writeSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(960, midi.NoteOff(0, 60))
		tr.Add(0, midi.NoteOn(0, 62, 90))
		tr.Add(960, midi.NoteOff(0, 62))
	})

	events, err := Extract(rd, AllTracks, contracts.AnyChannel)
	require.NoError(t, err)
	require.Equal(t, []contracts.Event{
		{Time: 0, Pitch: 60},
		{Time: 500, Pitch: 62},
	}, events)
}

func TestExtractHonorsTempoChanges(t *testing.T) {
	rd := writeSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		// Halve the tempo after one quarter note: the next quarter takes
		// a full second of wall time.
		tr.Add(960, smf.MetaTempo(60))
		tr.Add(0, midi.NoteOn(0, 62, 100))
		tr.Add(960, midi.NoteOn(0, 64, 100))
	})

	events, err := Extract(rd, AllTracks, contracts.AnyChannel)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, uint64(0), events[0].Time)
	require.Equal(t, uint64(500), events[1].Time)
	require.Equal(t, uint64(1500), events[2].Time)
}

func TestExtractFiltersChannel(t *testing.T) {
	rd := writeSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(0, midi.NoteOn(1, 72, 100))
		tr.Add(960, midi.NoteOn(1, 74, 100))
	})

	events, err := Extract(rd, AllTracks, 1)
	require.NoError(t, err)
	require.Equal(t, []contracts.Event{
		{Time: 0, Pitch: 72},
		{Time: 500, Pitch: 74},
	}, events)
}

func TestExtractDiscardsZeroVelocityNoteOns(t *testing.T) {
	// A note-on with velocity zero is a note-off in disguise and must not
	// enter the reference sequence.
	rd := writeSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(960, midi.NoteOn(0, 60, 0))
		tr.Add(0, midi.NoteOn(0, 62, 80))
	})

	events, err := Extract(rd, AllTracks, contracts.AnyChannel)
	require.NoError(t, err)
	require.Equal(t, []contracts.Event{
		{Time: 0, Pitch: 60},
		{Time: 500, Pitch: 62},
	}, events)
}

func TestExtractEmptySelectionFails(t *testing.T) {
	rd := writeSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
	})

	_, err := Extract(rd, AllTracks, 5)
	require.ErrorIs(t, err, ErrNoNoteOns)
}

func TestInfoCountsNoteOnsPerChannel(t *testing.T) {
	rd := writeSMF(t, func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(480, midi.NoteOn(0, 64, 100))
		tr.Add(480, midi.NoteOn(2, 48, 100))
	})

	info, err := Info(rd)
	require.NoError(t, err)
	require.Len(t, info.Tracks, 1)
	require.Equal(t, 2, info.Tracks[0].NoteOns[0])
	require.Equal(t, 1, info.Tracks[0].NoteOns[2])
	require.Equal(t, 0, info.Tracks[0].NoteOns[1])
}

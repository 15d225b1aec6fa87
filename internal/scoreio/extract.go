// Package scoreio builds reference event sequences from Standard MIDI
// Files. Only note-on events of the selected track and channel are kept;
// velocity is discarded and delta times are converted to absolute
// milliseconds honoring every tempo change along the way.
package scoreio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// AllTracks selects note-ons from every track, merged by time.
const AllTracks = -1

// ErrNoNoteOns is returned when the selected track/channel yields an empty
// sequence, which would leave nothing to align to.
var ErrNoNoteOns = errors.New("no note-on events for the selected track and channel")

// Extract reads a Standard MIDI File and returns its note-on events as
// (millisecond, pitch) pairs in ascending time order. track selects one
// track by index or AllTracks; channel selects one MIDI channel (0-15) or
// contracts.AnyChannel.
func Extract(rd io.Reader, track, channel int) ([]contracts.Event, error) {
	var events []contracts.Event
	err := smf.ReadTracksFrom(rd).Do(func(te smf.TrackEvent) {
		if track != AllTracks && te.TrackNo != track {
			return
		}
		var ch, key, vel uint8
		if !te.Message.GetNoteStart(&ch, &key, &vel) {
			return
		}
		if channel != contracts.AnyChannel && int(ch) != channel {
			return
		}
		events = append(events, contracts.Event{
			Time:  uint64(te.AbsMicroSeconds / 1000),
			Pitch: key,
		})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("reading MIDI file: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoNoteOns
	}
	// Events of a single track arrive in order, but merging tracks can
	// interleave; keep the sort stable so simultaneous notes retain their
	// track order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events, nil
}

// ExtractFile is Extract reading from a file path.
func ExtractFile(path string, track, channel int) ([]contracts.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening MIDI file: %w", err)
	}
	defer f.Close()
	return Extract(f, track, channel)
}

// TrackInfo summarizes one track of a MIDI file.
type TrackInfo struct {
	Track   int     // Track index.
	Events  int     // Total number of events on the track.
	NoteOns [16]int // Note-on count per MIDI channel.
}

// FileInfo summarizes the note-on contents of a MIDI file, used to pick a
// track and channel for extraction.
type FileInfo struct {
	Tracks []TrackInfo
}

// Info reads a Standard MIDI File and reports per-track, per-channel
// note-on counts.
func Info(rd io.Reader) (*FileInfo, error) {
	s, err := smf.ReadFrom(rd)
	if err != nil {
		return nil, fmt.Errorf("reading MIDI file: %w", err)
	}
	info := &FileInfo{}
	for trackNo, track := range s.Tracks {
		ti := TrackInfo{Track: trackNo, Events: len(track)}
		for _, ev := range track {
			var ch, key, vel uint8
			if ev.Message.GetNoteStart(&ch, &key, &vel) {
				ti.NoteOns[ch]++
			}
		}
		info.Tracks = append(info.Tracks, ti)
	}
	return info, nil
}

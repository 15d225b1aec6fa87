package stream

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/scorefollow/internal/logger"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

func TestParseEvent(t *testing.T) {
	for _, tc := range []struct {
		name    string
		line    string
		want    contracts.Event
		wantErr bool
	}{
		{name: "space separated", line: "1500 60", want: contracts.Event{Time: 1500, Pitch: 60}},
		{name: "semicolon separated", line: "1500;60", want: contracts.Event{Time: 1500, Pitch: 60}},
		{name: "tab separated", line: "0\t127", want: contracts.Event{Time: 0, Pitch: 127}},
		{name: "header line", line: "time;pitch", wantErr: true},
		{name: "pitch out of range", line: "10 200", wantErr: true},
		{name: "negative time", line: "-1 60", wantErr: true},
		{name: "too many fields", line: "1 2 3", wantErr: true},
		{name: "empty", line: "", wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			event, err := ParseEvent(tc.line)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrBadLine)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, event)
		})
	}
}

func TestSourceDeliversEventsInOrder(t *testing.T) {
	input := "time;pitch\n0 60\n\n500;62\nbogus line\n1000 64\n"
	src := New(strings.NewReader(input), &contracts.ClientOptions{Logger: logger.NewNoopLogger()})

	events := make(chan contracts.Event, 8)
	src.StartCapture(events)

	var got []contracts.Event
	timeout := time.After(2 * time.Second)
	for len(got) < 3 {
		select {
		case event := <-events:
			got = append(got, event)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
	require.Equal(t, []contracts.Event{
		{Time: 0, Pitch: 60},
		{Time: 500, Pitch: 62},
		{Time: 1000, Pitch: 64},
	}, got)
	require.NoError(t, src.Stop())
}

func TestSourceStopIsIdempotent(t *testing.T) {
	src := New(strings.NewReader(""), &contracts.ClientOptions{Logger: logger.NewNoopLogger()})
	src.StartCapture(make(chan contracts.Event, 1))
	require.NoError(t, src.Stop())
	require.NoError(t, src.Stop())
}

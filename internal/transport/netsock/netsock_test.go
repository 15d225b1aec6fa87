package netsock

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/scorefollow/internal/logger"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

func TestNewRequiresAddress(t *testing.T) {
	_, err := New("tcp", &contracts.ClientOptions{Logger: logger.NewNoopLogger()})
	require.ErrorIs(t, err, ErrMissingAddress)
}

func TestTCPSourceDeliversEvents(t *testing.T) {
	src, err := New("tcp", &contracts.ClientOptions{
		Logger:  logger.NewNoopLogger(),
		Address: "127.0.0.1:0",
	})
	require.NoError(t, err)

	events := make(chan contracts.Event, 8)
	src.StartCapture(events)

	conn, err := net.Dial("tcp", src.Addr().String())
	require.NoError(t, err)
	_, err = conn.Write([]byte("0 60\n510 62\n"))
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	var got []contracts.Event
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case event := <-events:
			got = append(got, event)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
	require.Equal(t, []contracts.Event{
		{Time: 0, Pitch: 60},
		{Time: 510, Pitch: 62},
	}, got)
	require.NoError(t, src.Stop())
}

func TestStopUnblocksAccept(t *testing.T) {
	src, err := New("tcp", &contracts.ClientOptions{
		Logger:  logger.NewNoopLogger(),
		Address: "127.0.0.1:0",
	})
	require.NoError(t, err)

	src.StartCapture(make(chan contracts.Event, 1))

	done := make(chan error, 1)
	go func() { done <- src.Stop() }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}

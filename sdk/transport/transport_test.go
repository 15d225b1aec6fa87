package transport

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leandrodaf/scorefollow/internal/transport/netsock"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

func TestNewEventSourceUnknownKind(t *testing.T) {
	_, err := NewEventSource(Kind("carrier-pigeon"))
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewEventSourceStdin(t *testing.T) {
	src, err := NewEventSource(KindStdin)
	require.NoError(t, err)
	require.NotNil(t, src)
}

func TestNewEventSourceTCPRequiresAddress(t *testing.T) {
	_, err := NewEventSource(KindTCP)
	require.ErrorIs(t, err, netsock.ErrMissingAddress)
}

func TestNewEventSourceTCP(t *testing.T) {
	src, err := NewEventSource(KindTCP, contracts.WithAddress("127.0.0.1:0"))
	require.NoError(t, err)
	require.NoError(t, src.Stop())
}

func TestNewDeviceSourceUnsupportedOS(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("device transport supported on this platform")
	}
	_, err := NewDeviceSource()
	require.ErrorIs(t, err, ErrUnsupportedOS)
}

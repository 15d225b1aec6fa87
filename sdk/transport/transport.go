// Package transport builds live event sources. A source feeds timestamped
// note-on events, in order, into a channel consumed by an alignment
// session; the available kinds cover hardware MIDI devices, sockets,
// websockets and standard input.
package transport

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/leandrodaf/scorefollow/internal/logger"
	"github.com/leandrodaf/scorefollow/internal/transport/mididarwin"
	"github.com/leandrodaf/scorefollow/internal/transport/midiwindows"
	"github.com/leandrodaf/scorefollow/internal/transport/netsock"
	"github.com/leandrodaf/scorefollow/internal/transport/stream"
	"github.com/leandrodaf/scorefollow/internal/transport/ws"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// Kind selects a live event transport.
type Kind string

const (
	KindDevice    Kind = "device" // Hardware MIDI input port.
	KindStdin     Kind = "stdin"  // Line-oriented events on standard input.
	KindTCP       Kind = "tcp"    // Line-oriented events over a TCP socket.
	KindUnix      Kind = "unix"   // Line-oriented events over a Unix domain socket.
	KindWebSocket Kind = "ws"     // Line-oriented events over a websocket.
)

// Error definitions for transport construction.
var (
	ErrUnsupportedOS = errors.New("unsupported operating system")
	ErrUnknownKind   = errors.New("unknown transport kind")
)

// deviceInitializers maps OS names to corresponding device source
// initializers.
var deviceInitializers = map[string]func(*contracts.ClientOptions) (contracts.DeviceSource, error){
	"darwin":  mididarwin.NewDeviceSource,
	"windows": midiwindows.NewDeviceSource,
}

// NewDeviceSource initializes a hardware MIDI source for the current
// operating system. It supports macOS (Darwin) and Windows, returning
// ErrUnsupportedOS elsewhere.
func NewDeviceSource(opts ...contracts.Option) (contracts.DeviceSource, error) {
	options := applyDefaultOptions(opts...)
	if initializer, exists := deviceInitializers[runtime.GOOS]; exists {
		return initializer(&options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

// NewEventSource initializes an event source of the given kind.
func NewEventSource(kind Kind, opts ...contracts.Option) (contracts.EventSource, error) {
	options := applyDefaultOptions(opts...)
	switch kind {
	case KindDevice:
		if initializer, exists := deviceInitializers[runtime.GOOS]; exists {
			return initializer(&options)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
	case KindStdin:
		return stream.New(os.Stdin, &options), nil
	case KindTCP:
		return netsock.New("tcp", &options)
	case KindUnix:
		return netsock.New("unix", &options)
	case KindWebSocket:
		return ws.New(&options)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// applyDefaultOptions sets default values for ClientOptions if not
// explicitly provided.
func applyDefaultOptions(opts ...contracts.Option) contracts.ClientOptions {
	options := &contracts.ClientOptions{Channel: contracts.AnyChannel}
	for _, opt := range opts {
		opt(options)
	}
	if options.Logger == nil {
		options.Logger = logger.NewNoopLogger()
	}
	if options.DeviceConfig == nil {
		options.DeviceConfig = &contracts.DeviceConfig{ClientName: "scorefollow"}
	}
	return *options
}

//go:build darwin
// +build darwin

// Package mididarwin captures note-on events from a CoreMIDI input device
// and republishes them as timestamped live events.
package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/youpy/go-coremidi"
	"go.uber.org/zap"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

const noteOnStatus = 0x90

// internalPortConnection is an interface for handling disconnection from a
// MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// Client captures note-on events on Darwin (macOS) systems. Raw packets
// arrive on a CoreMIDI callback thread; only note-ons passing the channel
// filter are converted to events, timestamped in milliseconds since
// capture started, and sent to the event channel.
type Client struct {
	logger       contracts.Logger
	eventChannel atomic.Value // Atomic storage for the event channel.
	client       coremidi.Client
	inputPort    coremidi.InputPort
	portConn     internalPortConnection
	channel      int // MIDI channel filter, contracts.AnyChannel for all.
	mu           sync.Mutex
	capturing    bool
	started      time.Time
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

// NewDeviceSource initializes a CoreMIDI-backed event source.
func NewDeviceSource(options *contracts.ClientOptions) (contracts.DeviceSource, error) {
	client, err := coremidi.NewClient(options.DeviceConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client created",
		zap.String("clientName", options.DeviceConfig.ClientName))

	return &Client{
		logger:  options.Logger,
		client:  client,
		channel: options.Channel,
	}, nil
}

// ListDevices retrieves the available MIDI input devices.
func (m *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		entity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice connects to a MIDI input device by ID, disconnecting any
// previous connection first.
func (m *Client) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		return fmt.Errorf("%w: %d", ErrInvalidMIDIDevice, deviceID)
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	source := sources[deviceID]
	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handlePacket)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}
	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device connected",
		zap.Int("deviceID", deviceID),
		zap.String("deviceName", source.Name()))
	return nil
}

// handlePacket converts a raw MIDI packet to a live event. Everything but
// note-ons with non-zero velocity is discarded here so the aligner only
// ever sees pitched onsets.
func (m *Client) handlePacket(source coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	eventChannel, _ := m.eventChannel.Load().(chan contracts.Event)
	if eventChannel == nil {
		return
	}
	if len(packet.Data) < 3 {
		m.logger.Warn("incomplete MIDI packet", zap.Int("bytes", len(packet.Data)))
		return
	}

	status := packet.Data[0]
	if status&0xF0 != noteOnStatus || packet.Data[2] == 0 {
		return
	}
	if m.channel != contracts.AnyChannel && int(status&0x0F) != m.channel {
		return
	}

	event := contracts.Event{
		Time:  uint64(time.Since(m.started).Milliseconds()),
		Pitch: packet.Data[1],
	}
	select {
	case eventChannel <- event:
	default:
		m.logger.Warn("event buffer full; dropping MIDI event",
			zap.Uint8("pitch", event.Pitch))
	}
}

// StartCapture begins delivering note-on events to the given channel.
func (m *Client) StartCapture(events chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if events == nil {
		m.logger.Error("StartCapture called with nil event channel")
		return
	}
	if m.capturing {
		m.logger.Warn("capture already started")
		return
	}

	m.logger.Info("starting MIDI event capture")
	m.started = time.Now()
	m.eventChannel.Store(events)
	m.capturing = true
}

// Stop halts capture, disconnects the device and waits for in-flight
// packet handling to finish. Safe to call more than once.
func (m *Client) Stop() error {
	m.stopOnce.Do(func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.capturing {
			m.capturing = false
			if m.portConn != nil {
				m.portConn.Disconnect()
				m.portConn = nil
			}
			// Swap in an inert channel so late callbacks cannot write to
			// the caller's channel.
			m.eventChannel.Store(make(chan contracts.Event))
			m.wg.Wait()
			m.logger.Info("MIDI capture stopped")
		}
	})
	return nil
}

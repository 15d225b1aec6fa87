//go:build windows
// +build windows

// Package midiwindows captures note-on events from a winmm MIDI input
// device and republishes them as timestamped live events.
package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

// HMIDIIN is a winmm MIDI input device handle.
type HMIDIIN windows.Handle

// Constants for callback flags.
const (
	CALLBACK_FUNCTION = 0x00030000
	MIDI_IO_STATUS    = 0x00000020
)

// Constants for MIDI input messages.
const (
	MIM_OPEN      = 0x3C1
	MIM_CLOSE     = 0x3C2
	MIM_DATA      = 0x3C3
	MIM_ERROR     = 0x3C5
	MIM_LONGERROR = 0x3C6
	MIM_MOREDATA  = 0x3CC
)

const noteOnStatus = 0x90

// midiInCaps mirrors the winmm MIDIINCAPSW structure.
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// ErrNoMIDIDevices is returned when no input devices are present.
var ErrNoMIDIDevices = errors.New("no MIDI devices found")

// Client captures note-on events on Windows via winmm.
type Client struct {
	logger       contracts.Logger
	eventChannel atomic.Value
	handle       HMIDIIN
	opened       bool
	callback     uintptr
	channel      int // MIDI channel filter, contracts.AnyChannel for all.
	started      time.Time
	mu           sync.Mutex
}

// NewDeviceSource initializes a winmm-backed event source.
func NewDeviceSource(options *contracts.ClientOptions) (contracts.DeviceSource, error) {
	options.Logger.Info("MIDI client created for Windows")
	return &Client{
		logger:  options.Logger,
		channel: options.Channel,
	}, nil
}

// ListDevices lists the available MIDI input devices.
func (m *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("failed to query MIDI device", zap.Uint32("device", i))
			continue
		}
		name := windows.UTF16ToString(caps.szPname[:])
		devices[i] = contracts.DeviceInfo{
			Name:         name,
			EntityName:   name,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		}
	}
	return devices, nil
}

// SelectDevice opens a MIDI input device by ID.
func (m *Client) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.opened {
		if err := m.closeDevice(); err != nil {
			return fmt.Errorf("closing previous MIDI device: %w", err)
		}
	}

	m.callback = windows.NewCallback(midiInCallback)
	r1, _, err := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&m.handle)),
		uintptr(deviceID),
		m.callback,
		uintptr(unsafe.Pointer(m)),
		uintptr(CALLBACK_FUNCTION|MIDI_IO_STATUS),
	)
	if r1 != 0 {
		return fmt.Errorf("opening MIDI device %d: %v", deviceID, err)
	}

	m.opened = true
	m.logger.Info("MIDI device connected", zap.Int("deviceID", deviceID))
	return nil
}

// StartCapture begins delivering note-on events to the given channel.
func (m *Client) StartCapture(events chan contracts.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opened {
		m.logger.Error("cannot start capture: no MIDI device selected")
		return
	}
	if _, ok := m.eventChannel.Load().(chan contracts.Event); ok {
		m.logger.Warn("capture already started")
		return
	}

	m.started = time.Now()
	m.eventChannel.Store(events)

	r1, _, err := procMidiInStart.Call(uintptr(m.handle))
	if r1 != 0 {
		m.logger.Error("failed to start MIDI capture", zap.Error(err))
		return
	}
	m.logger.Info("MIDI capture started")
}

// midiInCallback handles incoming winmm messages. Only note-ons with
// non-zero velocity passing the channel filter become live events.
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	m := (*Client)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		m.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		m.logger.Info("MIDI device closed")
	case MIM_DATA:
		status := byte(dwParam1 & 0xFF)
		pitch := byte((dwParam1 >> 8) & 0xFF)
		velocity := byte((dwParam1 >> 16) & 0xFF)

		if status&0xF0 != noteOnStatus || velocity == 0 {
			return 0
		}
		if m.channel != contracts.AnyChannel && int(status&0x0F) != m.channel {
			return 0
		}

		event := contracts.Event{
			Time:  uint64(time.Since(m.started).Milliseconds()),
			Pitch: pitch,
		}
		if ch, ok := m.eventChannel.Load().(chan contracts.Event); ok && ch != nil {
			select {
			case ch <- event:
			default:
				m.logger.Warn("event buffer full; dropping MIDI event",
					zap.Uint8("pitch", event.Pitch))
			}
		}
	case MIM_ERROR, MIM_LONGERROR:
		m.logger.Error("MIDI input error", zap.Uint32("message", wMsg))
	case MIM_MOREDATA:
	default:
	}
	return 0
}

// Stop halts capture and closes the device.
func (m *Client) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.opened {
		return nil
	}
	if err := m.closeDevice(); err != nil {
		return fmt.Errorf("stopping MIDI capture: %w", err)
	}
	m.logger.Info("MIDI capture stopped and device closed")
	return nil
}

// closeDevice stops the capture and releases the device handle.
func (m *Client) closeDevice() error {
	if m.handle == 0 {
		return errors.New("invalid MIDI device handle")
	}
	if r1, _, err := procMidiInStop.Call(uintptr(m.handle)); r1 != 0 {
		return fmt.Errorf("midiInStop: %v", err)
	}
	if r1, _, err := procMidiInClose.Call(uintptr(m.handle)); r1 != 0 {
		return fmt.Errorf("midiInClose: %v", err)
	}
	m.handle = 0
	m.opened = false
	m.eventChannel.Store(make(chan contracts.Event))
	return nil
}

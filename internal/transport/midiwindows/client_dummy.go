//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

var errUnavailable = errors.New("winmm MIDI is not available on this platform")

type dummyClient struct {
	logger contracts.Logger
}

// NewDeviceSource returns a stub on non-Windows systems.
func NewDeviceSource(options *contracts.ClientOptions) (contracts.DeviceSource, error) {
	options.Logger.Info("using dummy MIDI client for non-Windows system")
	return &dummyClient{logger: options.Logger}, nil
}

func (m *dummyClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, errUnavailable
}

func (m *dummyClient) SelectDevice(deviceID int) error {
	m.logger.Warn("SelectDevice called on dummy MIDI client")
	return errUnavailable
}

func (m *dummyClient) StartCapture(events chan contracts.Event) {
	m.logger.Warn("StartCapture called on dummy MIDI client")
}

func (m *dummyClient) Stop() error {
	return nil
}

package contracts

// EventSource feeds live performance events into a channel. Implementations
// must deliver events in non-decreasing timestamp order; ordering is the
// transport's responsibility, the aligner only verifies it.
type EventSource interface {
	// StartCapture begins delivering events to the given channel. The
	// channel is owned by the caller and is not closed by the source.
	StartCapture(events chan Event)
	// Stop halts capture and releases transport resources.
	Stop() error
}

// DeviceSource is an EventSource backed by a hardware MIDI input port.
type DeviceSource interface {
	EventSource

	// ListDevices lists all available MIDI input devices.
	ListDevices() ([]DeviceInfo, error)
	// SelectDevice connects to a MIDI input device by its ID.
	SelectDevice(deviceID int) error
}

package contracts

// Default stretch-factor bounds. A computed stretch outside the configured
// range is clamped and the result flagged as suspect.
const (
	DefaultMinStretch = 0.25
	DefaultMaxStretch = 4.0
)

// AnyChannel disables channel filtering on transports and extraction.
const AnyChannel = -1

// DeviceConfig holds configuration for hardware MIDI transports.
type DeviceConfig struct {
	ClientName string // Name under which the MIDI client registers.
}

// ClientOptions defines the configuration options shared by alignment
// sessions and transports.
type ClientOptions struct {
	Logger       Logger        // Logger for events and errors.
	Window       int           // Forward search window in score indices; 0 selects strict matching.
	MinStretch   float64       // Lower clamp bound for the stretch factor.
	MaxStretch   float64       // Upper clamp bound for the stretch factor.
	Sinks        []ResultSink  // Consumers of alignment results.
	Channel      int           // MIDI channel to capture/extract, or AnyChannel.
	Address      string        // Endpoint for socket and websocket transports.
	DeviceConfig *DeviceConfig // Configuration specific to device transports.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithWindow sets the forward search window for tolerant matching.
// A window of 0 means strict matching: only the exact next reference
// note is ever accepted.
func WithWindow(w int) Option {
	return func(opts *ClientOptions) {
		opts.Window = w
	}
}

// WithStretchBounds sets the clamp range for the stretch factor.
func WithStretchBounds(min, max float64) Option {
	return func(opts *ClientOptions) {
		opts.MinStretch = min
		opts.MaxStretch = max
	}
}

// WithResultSink registers an additional consumer of alignment results.
func WithResultSink(sink ResultSink) Option {
	return func(opts *ClientOptions) {
		opts.Sinks = append(opts.Sinks, sink)
	}
}

// WithChannel restricts capture to a single MIDI channel (0-15).
func WithChannel(channel int) Option {
	return func(opts *ClientOptions) {
		opts.Channel = channel
	}
}

// WithAddress sets the endpoint for socket and websocket transports.
func WithAddress(addr string) Option {
	return func(opts *ClientOptions) {
		opts.Address = addr
	}
}

// WithDeviceConfig sets the device transport configuration.
func WithDeviceConfig(config DeviceConfig) Option {
	return func(opts *ClientOptions) {
		opts.DeviceConfig = &config
	}
}

package follower

import (
	"github.com/leandrodaf/scorefollow/internal/logger"
	"github.com/leandrodaf/scorefollow/sdk/contracts"
)

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
	if options.MinStretch <= 0 {
		options.MinStretch = contracts.DefaultMinStretch
	}
	if options.MaxStretch <= 0 {
		options.MaxStretch = contracts.DefaultMaxStretch
	}
	return *options
}

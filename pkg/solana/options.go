package solana

import "go.uber.org/zap"

const defaultRentCacheSize = 1 << 10

type settings struct {
	logger        *zap.Logger
	rentCacheSize int64
}

// Option configures the gateway.
type Option func(*settings)

// WithLogger sets a custom logger for the gateway.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithRentCacheSize bounds the number of cached rent quotes.
func WithRentCacheSize(n int64) Option {
	return func(s *settings) { s.rentCacheSize = n }
}

func applyOptions(opts []Option) settings {
	s := settings{logger: zap.NewNop(), rentCacheSize: defaultRentCacheSize}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

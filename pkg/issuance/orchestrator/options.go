package orchestrator

import (
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
)

const (
	defaultPublishTimeout = 30 * time.Second
	defaultSubmitTimeout  = 2 * time.Minute
)

type settings struct {
	logger         *zap.Logger
	publishTimeout time.Duration
	submitTimeout  time.Duration
	observer       Observer
	newIdentity    func() issuance.AssetIdentity
}

// Option configures the orchestrator.
type Option func(*settings)

// WithLogger sets a custom logger for the orchestrator.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithPublishTimeout bounds the metadata publish call.
func WithPublishTimeout(d time.Duration) Option {
	return func(s *settings) { s.publishTimeout = d }
}

// WithSubmitTimeout bounds each submit-and-confirm call.
func WithSubmitTimeout(d time.Duration) Option {
	return func(s *settings) { s.submitTimeout = d }
}

// WithObserver registers a callback invoked after every state transition.
func WithObserver(o Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithIdentityGenerator overrides how asset identities are generated.
func WithIdentityGenerator(fn func() issuance.AssetIdentity) Option {
	return func(s *settings) { s.newIdentity = fn }
}

func applyOptions(opts []Option) settings {
	s := settings{
		logger:         zap.NewNop(),
		publishTimeout: defaultPublishTimeout,
		submitTimeout:  defaultSubmitTimeout,
		newIdentity:    issuance.NewAssetIdentity,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

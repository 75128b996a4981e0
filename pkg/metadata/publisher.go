// Package metadata publishes an asset's off-ledger descriptor and returns the
// content URI that the on-ledger metadata points at.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/token-launchpad/internal/metrics"
)

const (
	// DescriptorFilename is the object name the descriptor is published under.
	DescriptorFilename = "metadata.json"
	// DescriptorContentType is the MIME type of the canonical encoding.
	DescriptorContentType = "application/json"
)

// ErrEmptyURI indicates a backend accepted the upload but returned no URI.
var ErrEmptyURI = errors.New("upload returned an empty uri")

// Descriptor is the JSON document wallets and explorers fetch from the
// asset's metadata URI. Field order is fixed.
type Descriptor struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Encode returns the canonical encoding of d.
func (d Descriptor) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Uploader stores a blob and returns a URI it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, payload []byte, filename, contentType string) (string, error)
	Backend() string
}

// Publisher encodes descriptors and hands them to an Uploader.
type Publisher struct {
	uploader Uploader
	logger   *zap.Logger
}

// NewPublisher creates a publisher backed by uploader.
func NewPublisher(uploader Uploader, opts ...Option) *Publisher {
	s := applyOptions(opts)
	return &Publisher{uploader: uploader, logger: s.logger}
}

// Backend names the storage the publisher writes to.
func (p *Publisher) Backend() string {
	return p.uploader.Backend()
}

// Publish stores the descriptor and returns its content URI.
func (p *Publisher) Publish(ctx context.Context, d Descriptor) (string, error) {
	start := time.Now()
	backend := p.uploader.Backend()

	payload, err := d.Encode()
	if err != nil {
		return "", fmt.Errorf("encode descriptor: %w", err)
	}

	uri, err := p.uploader.Upload(ctx, payload, DescriptorFilename, DescriptorContentType)
	if err == nil && uri == "" {
		err = ErrEmptyURI
	}
	if err != nil {
		metrics.MetadataPublishesTotal.WithLabelValues(backend, "error").Inc()
		p.logger.Warn("metadata publish failed",
			zap.String("backend", backend),
			zap.String("symbol", d.Symbol),
			zap.Error(err),
		)
		return "", err
	}

	metrics.MetadataPublishesTotal.WithLabelValues(backend, "ok").Inc()
	p.logger.Info("metadata published",
		zap.String("backend", backend),
		zap.String("uri", uri),
		zap.Int("bytes", len(payload)),
		zap.Duration("duration", time.Since(start)),
	)
	return uri, nil
}

// Package issuancestore persists issuance records in PostgreSQL.
package issuancestore

import (
	"context"
	"errors"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
)

// ErrIssuanceNotFound is returned when a lookup finds no matching record.
var ErrIssuanceNotFound = errors.New("issuance not found")

// DefaultListLimit caps ListIssuances when the caller passes a non-positive limit.
const DefaultListLimit = 50

// Store defines the interface for issuance record persistence
type Store interface {
	CreateIssuance(ctx context.Context, rec *issuance.Record) error
	UpdateIssuance(ctx context.Context, rec *issuance.Record) error
	GetIssuance(ctx context.Context, id string) (*issuance.Record, error)
	ListIssuances(ctx context.Context, opts ...ListOption) ([]*issuance.Record, error)
}

// ListOptions filters ListIssuances.
type ListOptions struct {
	Limit       int
	Status      *issuance.Phase
	RequestedBy *string
}

// ListOption is a functional option for listing issuances
type ListOption func(*ListOptions)

// WithLimit caps the number of returned records
func WithLimit(limit int) ListOption {
	return func(opts *ListOptions) {
		opts.Limit = limit
	}
}

// WithStatus filters by workflow status
func WithStatus(status issuance.Phase) ListOption {
	return func(opts *ListOptions) {
		opts.Status = &status
	}
}

// WithRequestedBy filters by the requesting subject
func WithRequestedBy(subject string) ListOption {
	return func(opts *ListOptions) {
		opts.RequestedBy = &subject
	}
}

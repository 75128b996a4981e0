package issuancestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
)

type pgStore struct {
	db *bun.DB
}

// NewStore creates a new postgres implementation of the issuance store
func NewStore(db *bun.DB) *pgStore {
	return &pgStore{db: db}
}

func (s *pgStore) CreateIssuance(ctx context.Context, rec *issuance.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	dao, err := toIssuanceDao(rec)
	if err != nil {
		return fmt.Errorf("invalid issuance id %q: %w", rec.ID, err)
	}
	if _, err := s.db.NewInsert().Model(dao).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create issuance: %w", err)
	}
	return nil
}

func (s *pgStore) UpdateIssuance(ctx context.Context, rec *issuance.Record) error {
	rec.UpdatedAt = time.Now().UTC()

	dao, err := toIssuanceDao(rec)
	if err != nil {
		return fmt.Errorf("invalid issuance id %q: %w", rec.ID, err)
	}

	res, err := s.db.NewUpdate().
		Model(dao).
		Column("status", "current_step", "metadata_uri", "asset", "holder", "signatures",
			"explorer_url", "failed_stage", "failed_step", "error", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update issuance: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrIssuanceNotFound
	}
	return nil
}

func (s *pgStore) GetIssuance(ctx context.Context, id string) (*issuance.Record, error) {
	pk, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrIssuanceNotFound
	}

	dao := new(IssuanceDao)
	err = s.db.NewSelect().Model(dao).Where("id = ?", pk).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIssuanceNotFound
		}
		return nil, fmt.Errorf("failed to get issuance: %w", err)
	}
	return toRecord(dao)
}

func (s *pgStore) ListIssuances(ctx context.Context, opts ...ListOption) ([]*issuance.Record, error) {
	options := &ListOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.Limit <= 0 {
		options.Limit = DefaultListLimit
	}

	var daos []IssuanceDao
	query := s.db.NewSelect().Model(&daos)
	if options.Status != nil {
		query = query.Where("status = ?", string(*options.Status))
	}
	if options.RequestedBy != nil {
		query = query.Where("requested_by = ?", *options.RequestedBy)
	}

	err := query.OrderExpr("created_at DESC, id DESC").Limit(options.Limit).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list issuances: %w", err)
	}

	records := make([]*issuance.Record, 0, len(daos))
	for i := range daos {
		rec, err := toRecord(&daos[i])
		if err != nil {
			return nil, fmt.Errorf("failed to decode issuance %s: %w", daos[i].ID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

var _ Store = (*pgStore)(nil)

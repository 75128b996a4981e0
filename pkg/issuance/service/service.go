// Package service exposes issuance as a persisted, HTTP-facing operation.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-launchpad/pkg/app/errors"
	"github.com/chainsafe/token-launchpad/pkg/auth"
	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/issuance/orchestrator"
	"github.com/chainsafe/token-launchpad/pkg/issuancestore"
)

const (
	// MaxListLimit bounds ListIssuances.
	MaxListLimit = 200

	persistTimeout = 10 * time.Second
)

// Store is the narrow data-access interface for the issuance service.
//
//go:generate mockery --name Store --output mocks --outpkg mocks --filename mock_store.go --with-expecter
type Store interface {
	CreateIssuance(ctx context.Context, rec *issuance.Record) error
	UpdateIssuance(ctx context.Context, rec *issuance.Record) error
	GetIssuance(ctx context.Context, id string) (*issuance.Record, error)
	ListIssuances(ctx context.Context, opts ...issuancestore.ListOption) ([]*issuance.Record, error)
}

// Runner executes one issuance.
//
//go:generate mockery --name Runner --output mocks --outpkg mocks --filename mock_runner.go --with-expecter
type Runner interface {
	Execute(ctx context.Context, req issuance.Request) (*issuance.Result, error)
}

// RunnerFactory builds a fresh Runner that reports progress to observer.
type RunnerFactory func(observer orchestrator.Observer) Runner

// Service defines the interface for the issuance business logic
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Issue(ctx context.Context, req *issuance.Request) (*issuance.Record, error)
	GetIssuance(ctx context.Context, id string) (*issuance.Record, error)
	ListIssuances(ctx context.Context, filter issuance.ListFilter) ([]*issuance.Record, error)
	// Wait blocks until every accepted issuance has reached a terminal state.
	Wait()
}

type issuanceService struct {
	store     Store
	newRunner RunnerFactory
	logger    *zap.Logger
	running   sync.WaitGroup
}

// NewService creates a new issuance service
func NewService(store Store, newRunner RunnerFactory, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &issuanceService{
		store:     store,
		newRunner: newRunner,
		logger:    logger,
	}
}

// Issue validates req, records the attempt and starts it in the background.
// The returned record is the accepted snapshot; progress is read back with
// GetIssuance. The run is detached from ctx, so neither a client disconnect
// nor a request deadline stops it between groups. The record is updated on
// every workflow transition, so a failed attempt keeps the metadata URI,
// asset address and confirmed signatures needed to resume by hand.
func (s *issuanceService) Issue(ctx context.Context, req *issuance.Request) (*issuance.Record, error) {
	if req == nil {
		return nil, apperrors.BadRequestError(nil, "request body required")
	}
	normalized := req.Normalized()
	if err := normalized.Validate(); err != nil {
		return nil, mapIssueError(err, "")
	}

	rec := &issuance.Record{
		Request: normalized,
		Status:  issuance.PhaseIdle,
	}
	if sub, ok := auth.SubjectFromContext(ctx); ok {
		rec.RequestedBy = sub
	}
	if err := s.store.CreateIssuance(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save issuance: %w", err)
	}

	accepted := *rec
	s.running.Add(1)
	go s.run(context.WithoutCancel(ctx), rec)
	return &accepted, nil
}

// run owns rec until it returns.
func (s *issuanceService) run(ctx context.Context, rec *issuance.Record) {
	defer s.running.Done()

	runner := s.newRunner(func(ctx context.Context, p orchestrator.Progress) {
		applyProgress(rec, p)
		s.persist(ctx, rec)
	})

	res, err := runner.Execute(ctx, rec.Request)
	if err != nil {
		applyFailure(rec, err)
	} else {
		applyResult(rec, res)
	}
	s.persist(ctx, rec)

	if err != nil {
		fields := []zap.Field{zap.String("issuance_id", rec.ID), zap.Error(err)}
		var svcErr *apperrors.ServiceError
		if errors.As(mapIssueError(err, rec.ID), &svcErr) {
			fields = append(fields,
				zap.String("category", svcErr.Category.String()),
				zap.Any("details", svcErr.Details),
			)
		}
		s.logger.Error("issuance failed", fields...)
		return
	}
	s.logger.Info("issuance succeeded",
		zap.String("issuance_id", rec.ID),
		zap.String("asset", rec.Asset),
		zap.String("explorer_url", rec.ExplorerURL),
	)
}

func (s *issuanceService) Wait() {
	s.running.Wait()
}

// persist writes rec even when ctx was canceled, so an interrupted run
// still leaves its last known state behind.
func (s *issuanceService) persist(ctx context.Context, rec *issuance.Record) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := s.store.UpdateIssuance(ctx, rec); err != nil {
		s.logger.Error("failed to persist issuance progress",
			zap.String("issuance_id", rec.ID),
			zap.String("status", string(rec.Status)),
			zap.Error(err),
		)
	}
}

func (s *issuanceService) GetIssuance(ctx context.Context, id string) (*issuance.Record, error) {
	rec, err := s.store.GetIssuance(ctx, id)
	if err != nil {
		if errors.Is(err, issuancestore.ErrIssuanceNotFound) {
			return nil, apperrors.ResourceNotFoundError(err, "issuance not found")
		}
		return nil, fmt.Errorf("failed to get issuance: %w", err)
	}
	return rec, nil
}

func (s *issuanceService) ListIssuances(ctx context.Context, filter issuance.ListFilter) ([]*issuance.Record, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = issuancestore.DefaultListLimit
	}
	if limit > MaxListLimit {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("limit must not exceed %d", MaxListLimit))
	}

	opts := []issuancestore.ListOption{issuancestore.WithLimit(limit)}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown status %q", filter.Status))
		}
		opts = append(opts, issuancestore.WithStatus(filter.Status))
	}
	if filter.RequestedBy != "" {
		opts = append(opts, issuancestore.WithRequestedBy(filter.RequestedBy))
	}

	records, err := s.store.ListIssuances(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to list issuances: %w", err)
	}
	return records, nil
}

func applyProgress(rec *issuance.Record, p orchestrator.Progress) {
	rec.Status = p.State.Phase
	rec.CurrentStep = p.State.Step
	rec.MetadataURI = p.MetadataURI
	if p.Asset != (common.PublicKey{}) {
		rec.Asset = p.Asset.ToBase58()
	}
	if p.Holder != (common.PublicKey{}) {
		rec.Holder = p.Holder.ToBase58()
	}
	rec.Signatures = signatures(p.Submissions)
	if n := len(p.Submissions); n > 0 {
		rec.ExplorerURL = p.Submissions[n-1].ExplorerURL
	}
	if p.State.Phase == issuance.PhaseFailed {
		rec.FailedStage = p.State.Stage
		rec.FailedStep = p.State.Step
		if p.State.Err != nil {
			rec.Error = p.State.Err.Error()
		}
	}
}

func applyFailure(rec *issuance.Record, err error) {
	rec.Status = issuance.PhaseFailed
	rec.Error = err.Error()

	var staged issuance.StagedError
	if errors.As(err, &staged) {
		rec.FailedStage = staged.Stage()
	}
	var gerr *issuance.GroupSubmissionError
	if errors.As(err, &gerr) {
		rec.FailedStep = gerr.Step
		rec.CurrentStep = gerr.Step
		rec.Asset = gerr.Asset.ToBase58()
		rec.Holder = gerr.Holder.ToBase58()
		rec.MetadataURI = gerr.MetadataURI
		rec.Signatures = signatures(gerr.Completed)
	}
}

func applyResult(rec *issuance.Record, res *issuance.Result) {
	rec.Status = issuance.PhaseSucceeded
	rec.CurrentStep = len(res.Submissions)
	rec.MetadataURI = res.MetadataURI
	rec.Asset = res.Asset.ToBase58()
	rec.Holder = res.Holder.ToBase58()
	rec.Signatures = signatures(res.Submissions)
	rec.ExplorerURL = res.Handle.ExplorerURL
	rec.FailedStage = ""
	rec.FailedStep = 0
	rec.Error = ""
}

func signatures(handles []issuance.SubmissionHandle) []string {
	if len(handles) == 0 {
		return nil
	}
	out := make([]string, len(handles))
	for i, h := range handles {
		out[i] = h.Signature
	}
	return out
}

// mapIssueError converts workflow failures into categorized service errors
// whose details let an operator locate the partial state.
func mapIssueError(err error, id string) error {
	details := map[string]any{}
	if id != "" {
		details["issuance_id"] = id
	}

	var (
		verr *issuance.ValidationError
		merr *issuance.MetadataPublishError
		gerr *issuance.GroupSubmissionError
	)
	switch {
	case errors.As(err, &verr):
		details["stage"] = issuance.StageValidation
		if len(verr.Fields) > 0 {
			details["fields"] = verr.Fields
		}
		return apperrors.WithDetails(apperrors.BadRequestError(err, "invalid issuance request"), details)

	case errors.As(err, &merr):
		details["stage"] = issuance.StageMetadata
		details["backend"] = merr.Backend
		return apperrors.WithDetails(apperrors.DependencyFailureError(err, "metadata publish failed"), details)

	case errors.As(err, &gerr):
		details["stage"] = issuance.StageSubmission
		details["failed_step"] = gerr.Step
		details["group"] = gerr.Kind
		details["asset"] = gerr.Asset.ToBase58()
		details["holder"] = gerr.Holder.ToBase58()
		details["metadata_uri"] = gerr.MetadataURI
		details["completed_signatures"] = signatures(gerr.Completed)
		return apperrors.WithDetails(apperrors.DependencyFailureError(err, "ledger submission failed"), details)

	case errors.Is(err, orchestrator.ErrBusy):
		return apperrors.ConflictError(err, "issuance already in progress")

	default:
		return apperrors.GeneralError(err)
	}
}

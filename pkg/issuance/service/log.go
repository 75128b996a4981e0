package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
)

const serviceName = "IssuanceService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the issuance Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{svc: svc, logger: logger}
}

func (ls *logService) Issue(ctx context.Context, req *issuance.Request) (rec *issuance.Record, err error) {
	start := time.Now()

	fields := []zap.Field{zap.String("service", serviceName), zap.String("method", "Issue")}
	if req != nil {
		fields = append(fields,
			zap.String("symbol", req.Symbol),
			zap.Uint8("decimals", req.Decimals),
			zap.Uint64("initial_supply", req.InitialSupply),
			zap.Bool("revoke_freeze", req.RevokeFreezeAuthority),
			zap.Bool("revoke_mint", req.RevokeMintAuthority),
			zap.Bool("revoke_update", req.RevokeUpdateAuthority),
		)
	}
	ls.logger.Info("Issue started", fields...)

	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.logger.Error("Issue failed",
				zap.String("service", serviceName),
				zap.String("method", "Issue"),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}
		ls.logger.Info("Issue accepted",
			zap.String("service", serviceName),
			zap.String("method", "Issue"),
			zap.String("issuance_id", rec.ID),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.Issue(ctx, req)
}

func (ls *logService) GetIssuance(ctx context.Context, id string) (rec *issuance.Record, err error) {
	start := time.Now()
	defer func() {
		ls.logger.Debug("GetIssuance",
			zap.String("service", serviceName),
			zap.String("issuance_id", id),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
	}()
	return ls.svc.GetIssuance(ctx, id)
}

func (ls *logService) ListIssuances(ctx context.Context, filter issuance.ListFilter) (recs []*issuance.Record, err error) {
	start := time.Now()
	defer func() {
		ls.logger.Debug("ListIssuances",
			zap.String("service", serviceName),
			zap.Int("limit", filter.Limit),
			zap.String("status", string(filter.Status)),
			zap.String("requested_by", filter.RequestedBy),
			zap.Int("count", len(recs)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
	}()
	return ls.svc.ListIssuances(ctx, filter)
}

func (ls *logService) Wait() {
	start := time.Now()
	ls.svc.Wait()
	ls.logger.Info("Issuances drained",
		zap.String("service", serviceName),
		zap.Duration("duration", time.Since(start)),
	)
}

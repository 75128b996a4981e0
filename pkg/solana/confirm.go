package solana

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/blocto/solana-go-sdk/rpc"
	"go.uber.org/zap"
)

// awaitConfirmation polls the signature status until the transaction reaches
// the configured commitment, fails on chain, or the confirm timeout elapses.
// Transient RPC errors are logged and retried on the next tick.
func (g *Gateway) awaitConfirmation(ctx context.Context, sig string) error {
	timeout := g.cfg.confirmTimeout()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(g.cfg.pollInterval())
	defer ticker.Stop()

	target := rpc.Commitment(g.cfg.Commitment)
	start := time.Now()

	for {
		status, err := g.rpc.GetSignatureStatus(ctx, sig)
		switch {
		case err != nil:
			g.logger.Debug("signature status lookup failed", zap.String("signature", sig), zap.Error(err))
		case status == nil:
			// not yet visible to the node
		case status.Err != nil:
			return fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, status.Err)
		case reached(status, target):
			g.logger.Info("transaction confirmed",
				zap.String("signature", sig),
				zap.String("commitment", string(target)),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w: %s not %s after %s", ErrConfirmationTimeout, sig, target, timeout)
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// reached reports whether status satisfies target. A status without a
// confirmation level and without a confirmation count is rooted.
func reached(status *rpc.SignatureStatus, target rpc.Commitment) bool {
	if status.ConfirmationStatus == nil {
		return status.Confirmations == nil
	}
	return commitmentRank[*status.ConfirmationStatus] >= commitmentRank[target]
}

// ExplorerTxURL returns a block-explorer link for sig.
func (g *Gateway) ExplorerTxURL(sig string) string {
	base := g.cfg.ExplorerURL
	if base == "" {
		base = defaultExplorerURL
	}
	link := strings.TrimRight(base, "/") + "/tx/" + url.PathEscape(sig)
	if g.cfg.Cluster != "" && g.cfg.Cluster != "mainnet-beta" {
		link += "?cluster=" + url.QueryEscape(g.cfg.Cluster)
	}
	return link
}

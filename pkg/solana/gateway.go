// Package solana submits issuance operation groups to a Solana cluster and
// waits for them to be confirmed.
package solana

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/dgraph-io/ristretto/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
)

var (
	// ErrNoPayer indicates the gateway has no usable signing identity.
	ErrNoPayer = errors.New("payer keypair not configured")
	// ErrTransactionFailed indicates the cluster executed the transaction and reported an error.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrConfirmationTimeout indicates the transaction did not reach the target commitment in time.
	ErrConfirmationTimeout = errors.New("confirmation timed out")
)

// RPC is the subset of the Solana JSON-RPC API used by the gateway.
// *client.Client from solana-go-sdk satisfies it.
type RPC interface {
	GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	GetSignatureStatus(ctx context.Context, signature string) (*rpc.SignatureStatus, error)
}

// Gateway signs, broadcasts and confirms operation groups.
type Gateway struct {
	cfg    *Config
	rpc    RPC
	payer  types.Account
	logger *zap.Logger

	rent      *ristretto.Cache[uint64, uint64]
	rentGroup singleflight.Group
}

// NewGateway creates a gateway that pays for and signs every transaction with payer.
func NewGateway(cfg *Config, client RPC, payer types.Account, opts ...Option) (*Gateway, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid solana config: %w", err)
	}
	if client == nil {
		return nil, errors.New("nil rpc client")
	}
	s := applyOptions(opts)

	rent, err := ristretto.NewCache(&ristretto.Config[uint64, uint64]{
		NumCounters: s.rentCacheSize * 10,
		MaxCost:     s.rentCacheSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rent cache: %w", err)
	}

	return &Gateway{
		cfg:    cfg,
		rpc:    client,
		payer:  payer,
		logger: s.logger,
		rent:   rent,
	}, nil
}

// Payer returns the fee payer and authority used for every operation.
func (g *Gateway) Payer() (common.PublicKey, error) {
	if g.payer.PublicKey == (common.PublicKey{}) || len(g.payer.PrivateKey) == 0 {
		return common.PublicKey{}, ErrNoPayer
	}
	return g.payer.PublicKey, nil
}

// SubmitAndConfirm encodes group into a single transaction, signs it with the
// payer and coSigners, broadcasts it and blocks until it reaches the
// configured commitment.
func (g *Gateway) SubmitAndConfirm(
	ctx context.Context,
	group issuance.OperationGroup,
	coSigners []types.Account,
) (issuance.SubmissionHandle, error) {
	if _, err := g.Payer(); err != nil {
		return issuance.SubmissionHandle{}, err
	}

	instructions, err := g.encodeGroup(ctx, group)
	if err != nil {
		return issuance.SubmissionHandle{}, err
	}

	recent, err := g.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return issuance.SubmissionHandle{}, fmt.Errorf("get latest blockhash: %w", err)
	}

	signers := make([]types.Account, 0, len(coSigners)+1)
	signers = append(signers, g.payer)
	signers = append(signers, coSigners...)

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        g.payer.PublicKey,
			RecentBlockhash: recent.Blockhash,
			Instructions:    instructions,
		}),
		Signers: signers,
	})
	if err != nil {
		return issuance.SubmissionHandle{}, fmt.Errorf("sign transaction: %w", err)
	}

	sig, err := g.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return issuance.SubmissionHandle{}, fmt.Errorf("send transaction: %w", err)
	}

	handle := issuance.SubmissionHandle{Signature: sig, ExplorerURL: g.ExplorerTxURL(sig)}
	g.logger.Info("transaction broadcast",
		zap.Int("step", group.Step),
		zap.String("kind", string(group.Kind)),
		zap.String("signature", sig),
	)
	issuance.NotifyBroadcast(ctx, handle)

	if err := g.awaitConfirmation(ctx, sig); err != nil {
		return handle, err
	}
	return handle, nil
}

// Close releases the rent cache.
func (g *Gateway) Close() {
	g.rent.Close()
}

// rentExemption returns the minimum balance for an account of size bytes.
// Quotes are cached per size and concurrent lookups for the same size are
// collapsed into a single RPC call.
func (g *Gateway) rentExemption(ctx context.Context, size uint64) (uint64, error) {
	if lamports, ok := g.rent.Get(size); ok {
		return lamports, nil
	}

	v, err, _ := g.rentGroup.Do(strconv.FormatUint(size, 10), func() (any, error) {
		lamports, err := g.rpc.GetMinimumBalanceForRentExemption(ctx, size)
		if err != nil {
			return uint64(0), err
		}
		g.rent.Set(size, lamports, 1)
		g.rent.Wait()
		return lamports, nil
	})
	if err != nil {
		return 0, fmt.Errorf("get rent exemption for %d bytes: %w", size, err)
	}
	return v.(uint64), nil
}

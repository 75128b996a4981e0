package solana

import (
	"context"
	"sync"

	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

// mockRPC is a hand-written RPC double with per-method hooks.
type mockRPC struct {
	mu sync.Mutex

	GetLatestBlockhashFunc func(ctx context.Context) (rpc.GetLatestBlockhashValue, error)
	GetRentFunc            func(ctx context.Context, dataLen uint64) (uint64, error)
	SendTransactionFunc    func(ctx context.Context, tx types.Transaction) (string, error)
	GetSignatureStatusFunc func(ctx context.Context, signature string) (*rpc.SignatureStatus, error)

	rentCalls   int
	sent        []types.Transaction
	statusCalls int
}

func (m *mockRPC) GetLatestBlockhash(ctx context.Context) (rpc.GetLatestBlockhashValue, error) {
	if m.GetLatestBlockhashFunc != nil {
		return m.GetLatestBlockhashFunc(ctx)
	}
	return rpc.GetLatestBlockhashValue{Blockhash: testBlockhash, LatestValidBlockHeight: 100}, nil
}

func (m *mockRPC) GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error) {
	m.mu.Lock()
	m.rentCalls++
	m.mu.Unlock()
	if m.GetRentFunc != nil {
		return m.GetRentFunc(ctx, dataLen)
	}
	return 6960 * (dataLen + 128) / 1000, nil
}

func (m *mockRPC) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	m.mu.Lock()
	m.sent = append(m.sent, tx)
	m.mu.Unlock()
	if m.SendTransactionFunc != nil {
		return m.SendTransactionFunc(ctx, tx)
	}
	return "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW", nil
}

func (m *mockRPC) GetSignatureStatus(ctx context.Context, signature string) (*rpc.SignatureStatus, error) {
	m.mu.Lock()
	m.statusCalls++
	m.mu.Unlock()
	if m.GetSignatureStatusFunc != nil {
		return m.GetSignatureStatusFunc(ctx, signature)
	}
	c := rpc.CommitmentFinalized
	return &rpc.SignatureStatus{Slot: 1, ConfirmationStatus: &c}, nil
}

package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/metadata"
)

// mockPublisher records descriptors and returns a fixed URI.
type mockPublisher struct {
	mu sync.Mutex

	PublishFunc func(ctx context.Context, d metadata.Descriptor) (string, error)

	published []metadata.Descriptor
}

func (m *mockPublisher) Publish(ctx context.Context, d metadata.Descriptor) (string, error) {
	m.mu.Lock()
	m.published = append(m.published, d)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, d)
	}
	return "https://ucarecdn.com/0c8a0a9e-3f43-4b43-9b8f-0d5b4b1e6d11/", nil
}

func (m *mockPublisher) Backend() string { return "mock" }

func (m *mockPublisher) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.published)
}

type submission struct {
	group     issuance.OperationGroup
	coSigners []types.Account
}

// mockGateway records every submitted group. FailAtStep makes the
// submission with that 1-based step fail with FailErr.
type mockGateway struct {
	mu sync.Mutex

	payer      types.Account
	PayerErr   error
	FailAtStep int
	FailErr    error

	SubmitFunc func(ctx context.Context, group issuance.OperationGroup) (issuance.SubmissionHandle, error)

	submissions []submission
}

func newMockGateway() *mockGateway {
	return &mockGateway{payer: types.NewAccount()}
}

func (m *mockGateway) Payer() (common.PublicKey, error) {
	if m.PayerErr != nil {
		return common.PublicKey{}, m.PayerErr
	}
	return m.payer.PublicKey, nil
}

func (m *mockGateway) SubmitAndConfirm(
	ctx context.Context,
	group issuance.OperationGroup,
	coSigners []types.Account,
) (issuance.SubmissionHandle, error) {
	m.mu.Lock()
	m.submissions = append(m.submissions, submission{group: group, coSigners: coSigners})
	m.mu.Unlock()

	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, group)
	}

	handle := issuance.SubmissionHandle{Signature: fmt.Sprintf("sig-%d-%s", group.Step, group.Kind)}
	issuance.NotifyBroadcast(ctx, handle)
	if m.FailAtStep == group.Step {
		return issuance.SubmissionHandle{}, m.FailErr
	}
	return handle, nil
}

func (m *mockGateway) steps() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.submissions))
	for i, s := range m.submissions {
		out[i] = s.group.Step
	}
	return out
}

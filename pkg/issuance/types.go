package issuance

import (
	"context"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// AssetIdentity is the freshly generated keypair that becomes the asset's
// on-ledger address. It co-signs the account-creation group only.
type AssetIdentity struct {
	account types.Account
}

// NewAssetIdentity generates a new random identity.
func NewAssetIdentity() AssetIdentity {
	return AssetIdentity{account: types.NewAccount()}
}

// AssetIdentityFromAccount wraps an existing keypair.
func AssetIdentityFromAccount(acc types.Account) AssetIdentity {
	return AssetIdentity{account: acc}
}

// PublicKey returns the asset address.
func (a AssetIdentity) PublicKey() common.PublicKey {
	return a.account.PublicKey
}

// Signer returns the keypair used to co-sign the create-asset group.
func (a AssetIdentity) Signer() types.Account {
	return a.account
}

func (a AssetIdentity) String() string {
	return a.account.PublicKey.ToBase58()
}

// GroupKind identifies the role of an operation group in the sequence.
type GroupKind string

const (
	GroupCreateAsset       GroupKind = "create-asset"
	GroupCreateHolder      GroupKind = "create-holder"
	GroupMintSupply        GroupKind = "mint-supply"
	GroupRevokeAuthorities GroupKind = "revoke-authorities"
)

// OperationGroup is a set of ledger operations that must be applied
// atomically, in the given order, within one transaction.
type OperationGroup struct {
	Step       int
	Kind       GroupKind
	Operations []Operation
}

// NeedsAssetSignature reports whether the asset identity must co-sign.
func (g OperationGroup) NeedsAssetSignature() bool {
	for _, op := range g.Operations {
		if _, ok := op.(CreateAssetAccount); ok {
			return true
		}
	}
	return false
}

// SubmissionHandle identifies a confirmed ledger transaction.
type SubmissionHandle struct {
	Signature   string `json:"signature"`
	ExplorerURL string `json:"explorer_url,omitempty"`
}

// IsZero reports whether the handle is empty.
func (h SubmissionHandle) IsZero() bool {
	return h.Signature == ""
}

// Result is returned from a successful issuance.
type Result struct {
	Asset       common.PublicKey
	Holder      common.PublicKey
	MetadataURI string
	// Handle is the submission of the last group.
	Handle      SubmissionHandle
	Submissions []SubmissionHandle
}

type broadcastHookKey struct{}

// WithBroadcastHook returns a context carrying fn. Gateways call
// NotifyBroadcast once a transaction has been accepted by the network and
// before they start waiting for confirmation.
func WithBroadcastHook(ctx context.Context, fn func(SubmissionHandle)) context.Context {
	return context.WithValue(ctx, broadcastHookKey{}, fn)
}

// NotifyBroadcast invokes the hook stored in ctx, if any.
func NotifyBroadcast(ctx context.Context, handle SubmissionHandle) {
	if fn, ok := ctx.Value(broadcastHookKey{}).(func(SubmissionHandle)); ok && fn != nil {
		fn(handle)
	}
}

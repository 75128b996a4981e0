package issuance

import "github.com/blocto/solana-go-sdk/common"

// Operation is a single ledger operation inside an OperationGroup. The
// concrete types below are encoded into program instructions by the gateway.
type Operation interface {
	OperationName() string
}

// CreateAssetAccount allocates the asset account. Space is the size of the
// account at creation; FundedSpace is the size the account is funded for so
// that the metadata extension can later be written in place.
type CreateAssetAccount struct {
	Payer       common.PublicKey
	Asset       common.PublicKey
	Space       uint64
	FundedSpace uint64
}

// InitMetadataPointer points the asset's metadata extension at MetadataAddress.
type InitMetadataPointer struct {
	Asset           common.PublicKey
	Authority       common.PublicKey
	MetadataAddress common.PublicKey
}

// InitAsset initializes the asset. A nil FreezeAuthority means the asset can
// never be frozen.
type InitAsset struct {
	Asset           common.PublicKey
	Decimals        uint8
	MintAuthority   common.PublicKey
	FreezeAuthority *common.PublicKey
}

// InitMetadata writes name, symbol and URI into the asset's metadata extension.
type InitMetadata struct {
	Asset           common.PublicKey
	UpdateAuthority common.PublicKey
	MintAuthority   common.PublicKey
	Name            string
	Symbol          string
	URI             string
}

// CreateHolderAccount creates the holder's associated token account.
type CreateHolderAccount struct {
	Payer  common.PublicKey
	Holder common.PublicKey
	Owner  common.PublicKey
	Asset  common.PublicKey
}

// MintSupply mints Amount raw units into Holder.
type MintSupply struct {
	Asset     common.PublicKey
	Holder    common.PublicKey
	Authority common.PublicKey
	Amount    uint64
}

// RevokeMintAuthority permanently removes the asset's mint authority.
type RevokeMintAuthority struct {
	Asset   common.PublicKey
	Current common.PublicKey
}

// RevokeMetadataUpdateAuthority permanently removes the metadata update authority.
type RevokeMetadataUpdateAuthority struct {
	Asset   common.PublicKey
	Current common.PublicKey
}

func (CreateAssetAccount) OperationName() string            { return "create-asset-account" }
func (InitMetadataPointer) OperationName() string           { return "init-metadata-pointer" }
func (InitAsset) OperationName() string                     { return "init-asset" }
func (InitMetadata) OperationName() string                  { return "init-metadata" }
func (CreateHolderAccount) OperationName() string           { return "create-holder-account" }
func (MintSupply) OperationName() string                    { return "mint-supply" }
func (RevokeMintAuthority) OperationName() string           { return "revoke-mint-authority" }
func (RevokeMetadataUpdateAuthority) OperationName() string { return "revoke-metadata-update-authority" }

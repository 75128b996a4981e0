// Package program encodes the Token-2022, token-metadata interface and
// associated-token-account instructions used to issue a fungible asset.
// Everything here is pure: no RPC calls are made.
package program

import (
	"crypto/sha256"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
)

var (
	// Token2022ProgramID is the SPL Token-2022 program.
	Token2022ProgramID = common.PublicKeyFromString("TokenzQdBNbLqP5VEhdkAS6EPFLC1PQnWzuXBHHTvq1Sf")
	// AssociatedTokenProgramID is the SPL associated token account program.
	AssociatedTokenProgramID = common.PublicKeyFromString("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	// SystemProgramID is the native system program.
	SystemProgramID = common.PublicKeyFromString("11111111111111111111111111111111")
	// SysVarRentPubkey is the rent sysvar account.
	SysVarRentPubkey = common.PublicKeyFromString("SysvarRent111111111111111111111111111111111")
)

// Token-2022 instruction tags.
const (
	tagInitializeMint  uint8 = 0
	tagSetAuthority    uint8 = 6
	tagMintTo          uint8 = 7
	tagMetadataPointer uint8 = 39

	metadataPointerInitialize uint8 = 0
)

// AuthorityType mirrors the Token-2022 authority type enum.
type AuthorityType uint8

const (
	AuthorityMintTokens      AuthorityType = 0
	AuthorityFreezeAccount   AuthorityType = 1
	AuthorityMetadataPointer AuthorityType = 12
)

var (
	discriminatorInitializeMetadata = interfaceDiscriminator("spl_token_metadata_interface:initialize_account")
	discriminatorUpdateAuthority    = interfaceDiscriminator("spl_token_metadata_interface:update_the_authority")
)

func interfaceDiscriminator(name string) [8]byte {
	sum := sha256.Sum256([]byte(name))
	var d [8]byte
	copy(d[:], sum[:8])
	return d
}

// FindHolderAddress derives the Token-2022 associated token account of owner
// for mint.
func FindHolderAddress(owner, mint common.PublicKey) (common.PublicKey, error) {
	addr, _, err := common.FindProgramAddress(
		[][]byte{owner.Bytes(), Token2022ProgramID.Bytes(), mint.Bytes()},
		AssociatedTokenProgramID,
	)
	if err != nil {
		return common.PublicKey{}, fmt.Errorf("derive associated token account: %w", err)
	}
	return addr, nil
}

package program

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/near/borsh-go"
)

const (
	// baseAccountLen is the size of a plain token account; mints carrying
	// extensions are padded up to it before the account-type byte.
	baseAccountLen     = 165
	accountTypeLen     = 1
	tlvHeaderLen       = 4 // u16 type + u16 length
	metadataPointerLen = 64
)

type metadataEntry struct {
	Key   string
	Value string
}

type packedTokenMetadata struct {
	UpdateAuthority    common.PublicKey
	Mint               common.PublicKey
	Name               string
	Symbol             string
	URI                string
	AdditionalMetadata []metadataEntry
}

// MintWithMetadataPointerLen is the account size of a mint carrying only the
// metadata-pointer extension.
func MintWithMetadataPointerLen() uint64 {
	return baseAccountLen + accountTypeLen + tlvHeaderLen + metadataPointerLen
}

// TokenMetadataLen is the number of bytes the token-metadata extension will
// occupy, TLV header included.
func TokenMetadataLen(updateAuthority, mint common.PublicKey, name, symbol, uri string) (uint64, error) {
	packed, err := borsh.Serialize(packedTokenMetadata{
		UpdateAuthority:    updateAuthority,
		Mint:               mint,
		Name:               name,
		Symbol:             symbol,
		URI:                uri,
		AdditionalMetadata: []metadataEntry{},
	})
	if err != nil {
		return 0, fmt.Errorf("pack token metadata: %w", err)
	}
	return tlvHeaderLen + uint64(len(packed)), nil
}

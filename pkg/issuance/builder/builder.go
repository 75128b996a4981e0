// Package builder turns an issuance request into the ordered ledger operation
// groups that create, mint and optionally lock down a new asset.
package builder

import (
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/solana/program"
)

var (
	errZeroPayer = errors.New("payer identity is required")
	errZeroAsset = errors.New("asset identity is required")
	errNoURI     = errors.New("content uri is required")
)

// BuildGroups returns, in execution order:
//
//  1. create-asset: allocate and fund the asset account, point its metadata
//     extension at itself, initialize the asset, write name/symbol/uri
//  2. create-holder: create the payer's associated holder account
//  3. mint-supply: mint InitialSupply raw units into the holder
//  4. revoke-authorities: only when mint or update revocation is requested
//
// The freeze authority can only be withheld at step 1. BuildGroups performs
// no I/O and is deterministic for identical inputs.
func BuildGroups(
	req issuance.Request,
	asset common.PublicKey,
	contentURI string,
	payer common.PublicKey,
) ([]issuance.OperationGroup, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if payer == (common.PublicKey{}) {
		return nil, &issuance.ValidationError{Err: errZeroPayer}
	}
	if asset == (common.PublicKey{}) {
		return nil, &issuance.ValidationError{Err: errZeroAsset}
	}
	if contentURI == "" {
		return nil, &issuance.ValidationError{Err: errNoURI}
	}

	metadataLen, err := program.TokenMetadataLen(payer, asset, req.Name, req.Symbol, contentURI)
	if err != nil {
		return nil, fmt.Errorf("size metadata: %w", err)
	}
	holder, err := program.FindHolderAddress(payer, asset)
	if err != nil {
		return nil, err
	}

	space := program.MintWithMetadataPointerLen()

	var freeze *common.PublicKey
	if !req.RevokeFreezeAuthority {
		p := payer
		freeze = &p
	}

	groups := []issuance.OperationGroup{
		{
			Kind: issuance.GroupCreateAsset,
			Operations: []issuance.Operation{
				issuance.CreateAssetAccount{
					Payer:       payer,
					Asset:       asset,
					Space:       space,
					FundedSpace: space + metadataLen,
				},
				issuance.InitMetadataPointer{
					Asset:           asset,
					Authority:       payer,
					MetadataAddress: asset,
				},
				issuance.InitAsset{
					Asset:           asset,
					Decimals:        req.Decimals,
					MintAuthority:   payer,
					FreezeAuthority: freeze,
				},
				issuance.InitMetadata{
					Asset:           asset,
					UpdateAuthority: payer,
					MintAuthority:   payer,
					Name:            req.Name,
					Symbol:          req.Symbol,
					URI:             contentURI,
				},
			},
		},
		{
			Kind: issuance.GroupCreateHolder,
			Operations: []issuance.Operation{
				issuance.CreateHolderAccount{Payer: payer, Holder: holder, Owner: payer, Asset: asset},
			},
		},
		{
			Kind: issuance.GroupMintSupply,
			Operations: []issuance.Operation{
				issuance.MintSupply{Asset: asset, Holder: holder, Authority: payer, Amount: req.InitialSupply},
			},
		},
	}

	if req.RevokesAny() {
		var revokes []issuance.Operation
		if req.RevokeMintAuthority {
			revokes = append(revokes, issuance.RevokeMintAuthority{Asset: asset, Current: payer})
		}
		if req.RevokeUpdateAuthority {
			revokes = append(revokes, issuance.RevokeMetadataUpdateAuthority{Asset: asset, Current: payer})
		}
		groups = append(groups, issuance.OperationGroup{
			Kind:       issuance.GroupRevokeAuthorities,
			Operations: revokes,
		})
	}

	for i := range groups {
		groups[i].Step = i + 1
	}
	return groups, nil
}

// HolderOf returns the holder address the builder uses for payer and asset.
func HolderOf(payer, asset common.PublicKey) (common.PublicKey, error) {
	return program.FindHolderAddress(payer, asset)
}

package solana

import (
	"context"
	"fmt"

	"github.com/blocto/solana-go-sdk/program/system"
	"github.com/blocto/solana-go-sdk/types"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/solana/program"
)

func (g *Gateway) encodeGroup(ctx context.Context, group issuance.OperationGroup) ([]types.Instruction, error) {
	if len(group.Operations) == 0 {
		return nil, fmt.Errorf("operation group %d (%s) is empty", group.Step, group.Kind)
	}

	out := make([]types.Instruction, 0, len(group.Operations))
	for _, op := range group.Operations {
		ix, err := g.encodeOperation(ctx, op)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", op.OperationName(), err)
		}
		out = append(out, ix)
	}
	return out, nil
}

func (g *Gateway) encodeOperation(ctx context.Context, op issuance.Operation) (types.Instruction, error) {
	switch o := op.(type) {
	case issuance.CreateAssetAccount:
		lamports, err := g.rentExemption(ctx, o.FundedSpace)
		if err != nil {
			return types.Instruction{}, err
		}
		return system.CreateAccount(system.CreateAccountParam{
			From:     o.Payer,
			New:      o.Asset,
			Owner:    program.Token2022ProgramID,
			Lamports: lamports,
			Space:    o.Space,
		}), nil

	case issuance.InitMetadataPointer:
		return program.InitializeMetadataPointer(program.InitializeMetadataPointerParam{
			Mint:            o.Asset,
			Authority:       o.Authority,
			MetadataAddress: o.MetadataAddress,
		})

	case issuance.InitAsset:
		return program.InitializeMint(program.InitializeMintParam{
			Mint:       o.Asset,
			Decimals:   o.Decimals,
			MintAuth:   o.MintAuthority,
			FreezeAuth: o.FreezeAuthority,
		})

	case issuance.InitMetadata:
		return program.InitializeTokenMetadata(program.InitializeTokenMetadataParam{
			Metadata:        o.Asset,
			UpdateAuthority: o.UpdateAuthority,
			Mint:            o.Asset,
			MintAuthority:   o.MintAuthority,
			Name:            o.Name,
			Symbol:          o.Symbol,
			URI:             o.URI,
		})

	case issuance.CreateHolderAccount:
		return program.CreateAssociatedTokenAccount(program.CreateAssociatedTokenAccountParam{
			Funder:                 o.Payer,
			Owner:                  o.Owner,
			Mint:                   o.Asset,
			AssociatedTokenAccount: o.Holder,
		}), nil

	case issuance.MintSupply:
		return program.MintTo(program.MintToParam{
			Mint:   o.Asset,
			To:     o.Holder,
			Auth:   o.Authority,
			Amount: o.Amount,
		})

	case issuance.RevokeMintAuthority:
		return program.SetAuthority(program.SetAuthorityParam{
			Account: o.Asset,
			Type:    program.AuthorityMintTokens,
			Current: o.Current,
		})

	case issuance.RevokeMetadataUpdateAuthority:
		return program.UpdateMetadataAuthority(program.UpdateMetadataAuthorityParam{
			Metadata: o.Asset,
			Current:  o.Current,
		})

	default:
		return types.Instruction{}, fmt.Errorf("unsupported operation %T", op)
	}
}

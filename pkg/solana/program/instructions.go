package program

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/near/borsh-go"
)

type initializeMintData struct {
	Instruction           uint8
	Decimals              uint8
	MintAuthority         common.PublicKey
	FreezeAuthorityOption uint8
	FreezeAuthority       common.PublicKey
}

type metadataPointerInitializeData struct {
	Instruction     uint8
	SubInstruction  uint8
	Authority       common.PublicKey
	MetadataAddress common.PublicKey
}

type mintToData struct {
	Instruction uint8
	Amount      uint64
}

type setAuthorityData struct {
	Instruction        uint8
	AuthorityType      uint8
	NewAuthorityOption uint8
	NewAuthority       common.PublicKey
}

type initializeTokenMetadataData struct {
	Discriminator [8]byte
	Name          string
	Symbol        string
	URI           string
}

type updateMetadataAuthorityData struct {
	Discriminator [8]byte
	NewAuthority  common.PublicKey
}

// InitializeMintParam configures InitializeMint. A nil FreezeAuth disables
// freezing for the mint's lifetime.
type InitializeMintParam struct {
	Mint       common.PublicKey
	Decimals   uint8
	MintAuth   common.PublicKey
	FreezeAuth *common.PublicKey
}

// InitializeMint builds the Token-2022 InitializeMint instruction.
func InitializeMint(p InitializeMintParam) (types.Instruction, error) {
	d := initializeMintData{
		Instruction:   tagInitializeMint,
		Decimals:      p.Decimals,
		MintAuthority: p.MintAuth,
	}
	if p.FreezeAuth != nil {
		d.FreezeAuthorityOption = 1
		d.FreezeAuthority = *p.FreezeAuth
	}
	data, err := borsh.Serialize(d)
	if err != nil {
		return types.Instruction{}, fmt.Errorf("encode initialize mint: %w", err)
	}
	return types.Instruction{
		ProgramID: Token2022ProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Mint, IsSigner: false, IsWritable: true},
			{PubKey: SysVarRentPubkey, IsSigner: false, IsWritable: false},
		},
		Data: data,
	}, nil
}

// InitializeMetadataPointerParam configures InitializeMetadataPointer.
type InitializeMetadataPointerParam struct {
	Mint            common.PublicKey
	Authority       common.PublicKey
	MetadataAddress common.PublicKey
}

// InitializeMetadataPointer builds the metadata-pointer extension
// initialization. It must precede InitializeMint in the same transaction.
func InitializeMetadataPointer(p InitializeMetadataPointerParam) (types.Instruction, error) {
	data, err := borsh.Serialize(metadataPointerInitializeData{
		Instruction:     tagMetadataPointer,
		SubInstruction:  metadataPointerInitialize,
		Authority:       p.Authority,
		MetadataAddress: p.MetadataAddress,
	})
	if err != nil {
		return types.Instruction{}, fmt.Errorf("encode metadata pointer: %w", err)
	}
	return types.Instruction{
		ProgramID: Token2022ProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Mint, IsSigner: false, IsWritable: true},
		},
		Data: data,
	}, nil
}

// InitializeTokenMetadataParam configures InitializeTokenMetadata. The
// metadata account is the mint itself when the pointer references the mint.
type InitializeTokenMetadataParam struct {
	Metadata        common.PublicKey
	UpdateAuthority common.PublicKey
	Mint            common.PublicKey
	MintAuthority   common.PublicKey
	Name            string
	Symbol          string
	URI             string
}

// InitializeTokenMetadata builds the token-metadata interface Initialize
// instruction, served by the Token-2022 program.
func InitializeTokenMetadata(p InitializeTokenMetadataParam) (types.Instruction, error) {
	data, err := borsh.Serialize(initializeTokenMetadataData{
		Discriminator: discriminatorInitializeMetadata,
		Name:          p.Name,
		Symbol:        p.Symbol,
		URI:           p.URI,
	})
	if err != nil {
		return types.Instruction{}, fmt.Errorf("encode token metadata: %w", err)
	}
	return types.Instruction{
		ProgramID: Token2022ProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Metadata, IsSigner: false, IsWritable: true},
			{PubKey: p.UpdateAuthority, IsSigner: false, IsWritable: false},
			{PubKey: p.Mint, IsSigner: false, IsWritable: false},
			{PubKey: p.MintAuthority, IsSigner: true, IsWritable: false},
		},
		Data: data,
	}, nil
}

// UpdateMetadataAuthorityParam configures UpdateMetadataAuthority. A nil
// NewAuthority makes the metadata immutable.
type UpdateMetadataAuthorityParam struct {
	Metadata     common.PublicKey
	Current      common.PublicKey
	NewAuthority *common.PublicKey
}

// UpdateMetadataAuthority builds the token-metadata interface UpdateAuthority
// instruction.
func UpdateMetadataAuthority(p UpdateMetadataAuthorityParam) (types.Instruction, error) {
	d := updateMetadataAuthorityData{Discriminator: discriminatorUpdateAuthority}
	if p.NewAuthority != nil {
		d.NewAuthority = *p.NewAuthority
	}
	data, err := borsh.Serialize(d)
	if err != nil {
		return types.Instruction{}, fmt.Errorf("encode update authority: %w", err)
	}
	return types.Instruction{
		ProgramID: Token2022ProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Metadata, IsSigner: false, IsWritable: true},
			{PubKey: p.Current, IsSigner: true, IsWritable: false},
		},
		Data: data,
	}, nil
}

// MintToParam configures MintTo.
type MintToParam struct {
	Mint   common.PublicKey
	To     common.PublicKey
	Auth   common.PublicKey
	Amount uint64
}

// MintTo builds the Token-2022 MintTo instruction.
func MintTo(p MintToParam) (types.Instruction, error) {
	data, err := borsh.Serialize(mintToData{Instruction: tagMintTo, Amount: p.Amount})
	if err != nil {
		return types.Instruction{}, fmt.Errorf("encode mint to: %w", err)
	}
	return types.Instruction{
		ProgramID: Token2022ProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Mint, IsSigner: false, IsWritable: true},
			{PubKey: p.To, IsSigner: false, IsWritable: true},
			{PubKey: p.Auth, IsSigner: true, IsWritable: false},
		},
		Data: data,
	}, nil
}

// SetAuthorityParam configures SetAuthority. A nil NewAuth revokes the
// authority permanently.
type SetAuthorityParam struct {
	Account common.PublicKey
	Type    AuthorityType
	Current common.PublicKey
	NewAuth *common.PublicKey
}

// SetAuthority builds the Token-2022 SetAuthority instruction.
func SetAuthority(p SetAuthorityParam) (types.Instruction, error) {
	d := setAuthorityData{Instruction: tagSetAuthority, AuthorityType: uint8(p.Type)}
	if p.NewAuth != nil {
		d.NewAuthorityOption = 1
		d.NewAuthority = *p.NewAuth
	}
	data, err := borsh.Serialize(d)
	if err != nil {
		return types.Instruction{}, fmt.Errorf("encode set authority: %w", err)
	}
	return types.Instruction{
		ProgramID: Token2022ProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Account, IsSigner: false, IsWritable: true},
			{PubKey: p.Current, IsSigner: true, IsWritable: false},
		},
		Data: data,
	}, nil
}

// CreateAssociatedTokenAccountParam configures CreateAssociatedTokenAccount.
type CreateAssociatedTokenAccountParam struct {
	Funder                 common.PublicKey
	Owner                  common.PublicKey
	Mint                   common.PublicKey
	AssociatedTokenAccount common.PublicKey
}

// CreateAssociatedTokenAccount builds the associated-token-account Create
// instruction against the Token-2022 program.
func CreateAssociatedTokenAccount(p CreateAssociatedTokenAccountParam) types.Instruction {
	return types.Instruction{
		ProgramID: AssociatedTokenProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Funder, IsSigner: true, IsWritable: true},
			{PubKey: p.AssociatedTokenAccount, IsSigner: false, IsWritable: true},
			{PubKey: p.Owner, IsSigner: false, IsWritable: false},
			{PubKey: p.Mint, IsSigner: false, IsWritable: false},
			{PubKey: SystemProgramID, IsSigner: false, IsWritable: false},
			{PubKey: Token2022ProgramID, IsSigner: false, IsWritable: false},
		},
		Data: []byte{},
	}
}

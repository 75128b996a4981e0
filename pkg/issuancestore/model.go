package issuancestore

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
)

// IssuanceDao is a data access object that maps directly to the 'issuances' table in PostgreSQL.
type IssuanceDao struct {
	bun.BaseModel `bun:"table:issuances,alias:i"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`

	Name          string `bun:"name,notnull,type:varchar(32)"`
	Symbol        string `bun:"symbol,notnull,type:varchar(10)"`
	Decimals      int16  `bun:"decimals,notnull"`
	InitialSupply string `bun:"initial_supply,notnull,type:numeric(20,0)"`
	ImageURI      string `bun:"image_uri,notnull,type:text"`
	Description   string `bun:"description,notnull,type:text"`
	RevokeFreeze  bool   `bun:"revoke_freeze,notnull,default:false"`
	RevokeMint    bool   `bun:"revoke_mint,notnull,default:false"`
	RevokeUpdate  bool   `bun:"revoke_update,notnull,default:false"`

	Status      string   `bun:"status,notnull,type:varchar(32)"`
	CurrentStep int      `bun:"current_step,notnull,default:0"`
	MetadataURI *string  `bun:"metadata_uri,type:text"`
	Asset       *string  `bun:"asset,type:varchar(44)"`
	Holder      *string  `bun:"holder,type:varchar(44)"`
	Signatures  []string `bun:"signatures,array,type:text[]"`
	ExplorerURL *string  `bun:"explorer_url,type:text"`
	FailedStage *string  `bun:"failed_stage,type:varchar(16)"`
	FailedStep  *int     `bun:"failed_step"`
	Error       *string  `bun:"error,type:text"`
	RequestedBy *string  `bun:"requested_by,type:varchar(255)"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toIssuanceDao(rec *issuance.Record) (*IssuanceDao, error) {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, err
	}

	dao := &IssuanceDao{
		ID:            id,
		Name:          rec.Request.Name,
		Symbol:        rec.Request.Symbol,
		Decimals:      int16(rec.Request.Decimals),
		InitialSupply: strconv.FormatUint(rec.Request.InitialSupply, 10),
		ImageURI:      rec.Request.ImageURI,
		Description:   rec.Request.Description,
		RevokeFreeze:  rec.Request.RevokeFreezeAuthority,
		RevokeMint:    rec.Request.RevokeMintAuthority,
		RevokeUpdate:  rec.Request.RevokeUpdateAuthority,
		Status:        string(rec.Status),
		CurrentStep:   rec.CurrentStep,
		MetadataURI:   optString(rec.MetadataURI),
		Asset:         optString(rec.Asset),
		Holder:        optString(rec.Holder),
		Signatures:    rec.Signatures,
		ExplorerURL:   optString(rec.ExplorerURL),
		FailedStage:   optString(string(rec.FailedStage)),
		Error:         optString(rec.Error),
		RequestedBy:   optString(rec.RequestedBy),
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	if rec.FailedStep > 0 {
		step := rec.FailedStep
		dao.FailedStep = &step
	}
	return dao, nil
}

func toRecord(dao *IssuanceDao) (*issuance.Record, error) {
	supply, err := strconv.ParseUint(dao.InitialSupply, 10, 64)
	if err != nil {
		return nil, err
	}

	rec := &issuance.Record{
		ID: dao.ID.String(),
		Request: issuance.Request{
			Name:                  dao.Name,
			Symbol:                dao.Symbol,
			Decimals:              uint8(dao.Decimals),
			InitialSupply:         supply,
			ImageURI:              dao.ImageURI,
			Description:           dao.Description,
			RevokeFreezeAuthority: dao.RevokeFreeze,
			RevokeMintAuthority:   dao.RevokeMint,
			RevokeUpdateAuthority: dao.RevokeUpdate,
		},
		Status:      issuance.Phase(dao.Status),
		CurrentStep: dao.CurrentStep,
		MetadataURI: derefString(dao.MetadataURI),
		Asset:       derefString(dao.Asset),
		Holder:      derefString(dao.Holder),
		Signatures:  dao.Signatures,
		ExplorerURL: derefString(dao.ExplorerURL),
		FailedStage: issuance.Stage(derefString(dao.FailedStage)),
		Error:       derefString(dao.Error),
		RequestedBy: derefString(dao.RequestedBy),
		CreatedAt:   dao.CreatedAt,
		UpdatedAt:   dao.UpdatedAt,
	}
	if dao.FailedStep != nil {
		rec.FailedStep = *dao.FailedStep
	}
	return rec, nil
}

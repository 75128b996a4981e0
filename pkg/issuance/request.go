// Package issuance holds the domain model shared by the issuance workflow:
// the operator request, the asset identity, ledger operation groups, the
// failure taxonomy and the persisted issuance record.
package issuance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MinDecimals and MaxDecimals bound the precision an operator may request.
	MinDecimals = 1
	MaxDecimals = 9

	// MaxNameLength and MaxSymbolLength follow the token-metadata conventions
	// used by wallets and explorers.
	MaxNameLength   = 32
	MaxSymbolLength = 10
)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// Request is the operator input for a single issuance. It is treated as
// immutable once handed to the orchestrator.
type Request struct {
	Name          string `json:"name" yaml:"name" validate:"required,max=32"`
	Symbol        string `json:"symbol" yaml:"symbol" validate:"required,max=10"`
	Decimals      uint8  `json:"decimals" yaml:"decimals" validate:"min=1,max=9"`
	InitialSupply uint64 `json:"initial_supply" yaml:"initial_supply" validate:"min=1"`
	ImageURI      string `json:"image_uri" yaml:"image_uri" validate:"required,url"`
	Description   string `json:"description" yaml:"description" validate:"required"`

	RevokeFreezeAuthority bool `json:"revoke_freeze_authority" yaml:"revoke_freeze_authority"`
	RevokeMintAuthority   bool `json:"revoke_mint_authority" yaml:"revoke_mint_authority"`
	RevokeUpdateAuthority bool `json:"revoke_update_authority" yaml:"revoke_update_authority"`
}

// Validate checks the normalized request and returns a *ValidationError
// listing every offending field. Name and symbol limits are in bytes, the
// unit the on-ledger metadata record stores.
func (r *Request) Validate() error {
	if r == nil {
		return &ValidationError{Fields: []FieldError{{Field: "request", Rule: "required"}}}
	}

	normalized := r.Normalized()
	var fields []FieldError
	err := requestValidator.Struct(&normalized)
	if err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ValidationError{Err: err}
		}
		for _, fe := range verrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
			}
			fields = append(fields, FieldError{Field: jsonFieldName(fe.StructField()), Rule: rule})
		}
	}

	fields = appendByteLimit(fields, "name", normalized.Name, MaxNameLength)
	fields = appendByteLimit(fields, "symbol", normalized.Symbol, MaxSymbolLength)
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields, Err: err}
}

func appendByteLimit(fields []FieldError, field, value string, limit int) []FieldError {
	if len(value) <= limit {
		return fields
	}
	for _, f := range fields {
		if f.Field == field {
			return fields
		}
	}
	return append(fields, FieldError{Field: field, Rule: fmt.Sprintf("max=%d", limit)})
}

// Normalized returns a copy with surrounding whitespace removed from the
// text fields.
func (r *Request) Normalized() Request {
	n := *r
	n.Name = strings.TrimSpace(r.Name)
	n.Symbol = strings.TrimSpace(r.Symbol)
	n.ImageURI = strings.TrimSpace(r.ImageURI)
	n.Description = strings.TrimSpace(r.Description)
	return n
}

// RevokesAny reports whether a post-mint revocation group is required.
func (r *Request) RevokesAny() bool {
	return r.RevokeMintAuthority || r.RevokeUpdateAuthority
}

func jsonFieldName(structField string) string {
	switch structField {
	case "Name":
		return "name"
	case "Symbol":
		return "symbol"
	case "Decimals":
		return "decimals"
	case "InitialSupply":
		return "initial_supply"
	case "ImageURI":
		return "image_uri"
	case "Description":
		return "description"
	default:
		return strings.ToLower(structField)
	}
}

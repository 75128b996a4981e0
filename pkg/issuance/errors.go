package issuance

import (
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/common"
)

// Stage names the part of the workflow an error originated from.
type Stage string

const (
	StageValidation Stage = "validation"
	StageMetadata   Stage = "metadata"
	StageSubmission Stage = "submission"
)

// StagedError is implemented by every workflow failure.
type StagedError interface {
	error
	Stage() Stage
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError is returned before any remote call is made.
type ValidationError struct {
	Fields []FieldError
	Err    error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		if e.Err != nil {
			return "invalid issuance request: " + e.Err.Error()
		}
		return "invalid issuance request"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Rule)
	}
	return "invalid issuance request: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Stage implements StagedError.
func (e *ValidationError) Stage() Stage { return StageValidation }

// MetadataPublishError means the descriptor could not be published. No
// ledger state has been touched when it is returned.
type MetadataPublishError struct {
	Backend string
	Err     error
}

func (e *MetadataPublishError) Error() string {
	if e.Backend != "" {
		return fmt.Sprintf("publish metadata to %s: %v", e.Backend, e.Err)
	}
	return fmt.Sprintf("publish metadata: %v", e.Err)
}

func (e *MetadataPublishError) Unwrap() error { return e.Err }

// Stage implements StagedError.
func (e *MetadataPublishError) Stage() Stage { return StageMetadata }

// GroupSubmissionError reports the first operation group that failed to be
// submitted or confirmed. Step is 1-based. Earlier groups have already been
// confirmed on the ledger and are listed in Completed; they are not undone.
type GroupSubmissionError struct {
	Step        int
	Kind        GroupKind
	Asset       common.PublicKey
	Holder      common.PublicKey
	MetadataURI string
	Completed   []SubmissionHandle
	Err         error
}

func (e *GroupSubmissionError) Error() string {
	return fmt.Sprintf("operation group %d (%s) failed: %v", e.Step, e.Kind, e.Err)
}

func (e *GroupSubmissionError) Unwrap() error { return e.Err }

// Stage implements StagedError.
func (e *GroupSubmissionError) Stage() Stage { return StageSubmission }

package issuance

import (
	"fmt"
	"time"
)

// Phase is the coarse position of an issuance in its workflow.
type Phase string

const (
	PhaseIdle               Phase = "idle"
	PhasePublishingMetadata Phase = "publishing-metadata"
	PhaseSubmittingGroup    Phase = "submitting-group"
	PhaseConfirming         Phase = "confirming"
	PhaseSucceeded          Phase = "succeeded"
	PhaseFailed             Phase = "failed"
)

// Terminal reports whether no further transition can happen.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	switch p {
	case PhaseIdle, PhasePublishingMetadata, PhaseSubmittingGroup, PhaseConfirming, PhaseSucceeded, PhaseFailed:
		return true
	}
	return false
}

// ListFilter narrows a listing of records. Zero values match everything.
type ListFilter struct {
	Limit       int
	Status      Phase
	RequestedBy string
}

// State is a snapshot of the orchestrator state machine.
type State struct {
	Phase Phase
	// Step is the 1-based group index for submitting/confirming, and the
	// failed step for a submission failure.
	Step  int
	Kind  GroupKind
	Stage Stage
	Err   error
}

func (s State) String() string {
	switch s.Phase {
	case PhaseSubmittingGroup, PhaseConfirming:
		return fmt.Sprintf("%s(%d)", s.Phase, s.Step)
	case PhaseFailed:
		if s.Step > 0 {
			return fmt.Sprintf("%s(%s, %d)", s.Phase, s.Stage, s.Step)
		}
		return fmt.Sprintf("%s(%s)", s.Phase, s.Stage)
	default:
		return string(s.Phase)
	}
}

// Record is the persisted view of one issuance attempt. It keeps enough
// partial state to resume manually after a mid-sequence failure.
type Record struct {
	ID          string    `json:"id"`
	Request     Request   `json:"request"`
	Status      Phase     `json:"status"`
	CurrentStep int       `json:"current_step,omitempty"`
	MetadataURI string    `json:"metadata_uri,omitempty"`
	Asset       string    `json:"asset,omitempty"`
	Holder      string    `json:"holder,omitempty"`
	Signatures  []string  `json:"signatures,omitempty"`
	ExplorerURL string    `json:"explorer_url,omitempty"`
	FailedStage Stage     `json:"failed_stage,omitempty"`
	FailedStep  int       `json:"failed_step,omitempty"`
	Error       string    `json:"error,omitempty"`
	RequestedBy string    `json:"requested_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

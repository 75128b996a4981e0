// Package orchestrator drives a single issuance through metadata publication
// and the ordered ledger operation groups.
//
// The sequence is strictly linear: each group is submitted only after the
// previous one is confirmed, and the first failure stops the run. Groups that
// were already confirmed are never compensated; the returned error carries
// enough partial state to resume by hand.
package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"go.uber.org/zap"

	"github.com/chainsafe/token-launchpad/internal/metrics"
	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/issuance/builder"
	"github.com/chainsafe/token-launchpad/pkg/metadata"
)

// ErrBusy is returned when Execute is called while a run is in progress.
var ErrBusy = errors.New("issuance already in progress")

// Publisher publishes the off-ledger descriptor.
type Publisher interface {
	Publish(ctx context.Context, d metadata.Descriptor) (string, error)
	Backend() string
}

// Gateway signs, submits and confirms operation groups.
type Gateway interface {
	Payer() (common.PublicKey, error)
	SubmitAndConfirm(ctx context.Context, group issuance.OperationGroup, coSigners []types.Account) (issuance.SubmissionHandle, error)
}

// Progress is the observable state of a run.
type Progress struct {
	State       issuance.State
	MetadataURI string
	Asset       common.PublicKey
	Holder      common.PublicKey
	Submissions []issuance.SubmissionHandle
}

// Observer is notified synchronously after every transition.
type Observer func(ctx context.Context, p Progress)

// Orchestrator runs the issuance state machine.
type Orchestrator struct {
	publisher Publisher
	gateway   Gateway
	settings  settings

	run sync.Mutex

	mu       sync.RWMutex
	progress Progress
}

// New creates an orchestrator in the idle state.
func New(publisher Publisher, gateway Gateway, opts ...Option) *Orchestrator {
	return &Orchestrator{
		publisher: publisher,
		gateway:   gateway,
		settings:  applyOptions(opts),
		progress:  Progress{State: issuance.State{Phase: issuance.PhaseIdle}},
	}
}

// State returns the current state.
func (o *Orchestrator) State() issuance.State {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.progress.State
}

// Progress returns a copy of the current progress.
func (o *Orchestrator) Progress() Progress {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p := o.progress
	p.Submissions = append([]issuance.SubmissionHandle(nil), o.progress.Submissions...)
	return p
}

// Execute runs one issuance from scratch. Every call generates a new asset
// identity, so re-running after a failure never reuses ledger addresses.
//
// Cancellation of ctx does not stop a run: once started, the sequence only
// ends on completion or on the failure of a remote call, each bounded by its
// own publish or submit timeout. Values carried by ctx are kept. Text fields
// of req are trimmed before validation, and the trimmed values are what gets
// published and written to the ledger.
//
// Errors are one of *issuance.ValidationError, *issuance.MetadataPublishError
// or *issuance.GroupSubmissionError.
func (o *Orchestrator) Execute(ctx context.Context, req issuance.Request) (*issuance.Result, error) {
	if !o.run.TryLock() {
		return nil, ErrBusy
	}
	defer o.run.Unlock()

	ctx = context.WithoutCancel(ctx)
	req = req.Normalized()

	start := time.Now()
	metrics.IssuancesInFlight.Inc()
	defer metrics.IssuancesInFlight.Dec()

	o.reset()
	logger := o.settings.logger.With(zap.String("symbol", req.Symbol))

	payer, err := o.gateway.Payer()
	if err != nil {
		return nil, o.fail(ctx, start, &issuance.ValidationError{
			Fields: []issuance.FieldError{{Field: "payer", Rule: "available"}},
			Err:    err,
		}, 0)
	}
	if err := req.Validate(); err != nil {
		return nil, o.fail(ctx, start, err, 0)
	}

	o.transition(ctx, func(p *Progress) {
		p.State = issuance.State{Phase: issuance.PhasePublishingMetadata}
	})
	uri, err := o.publish(ctx, req)
	if err != nil {
		return nil, o.fail(ctx, start, &issuance.MetadataPublishError{Backend: o.publisher.Backend(), Err: err}, 0)
	}
	logger.Info("metadata published", zap.String("uri", uri))

	asset := o.settings.newIdentity()
	groups, err := builder.BuildGroups(req, asset.PublicKey(), uri, payer)
	if err != nil {
		var verr *issuance.ValidationError
		if !errors.As(err, &verr) {
			err = &issuance.ValidationError{Err: err}
		}
		return nil, o.fail(ctx, start, err, 0)
	}
	holder, err := builder.HolderOf(payer, asset.PublicKey())
	if err != nil {
		return nil, o.fail(ctx, start, &issuance.ValidationError{Err: err}, 0)
	}
	o.transition(ctx, func(p *Progress) {
		p.MetadataURI = uri
		p.Asset = asset.PublicKey()
		p.Holder = holder
	})
	logger.Info("operation groups built",
		zap.String("asset", asset.String()),
		zap.Int("groups", len(groups)),
	)

	submissions := make([]issuance.SubmissionHandle, 0, len(groups))
	for _, group := range groups {
		handle, err := o.submit(ctx, group, asset)
		if err != nil {
			logger.Error("operation group failed",
				zap.Int("step", group.Step),
				zap.String("kind", string(group.Kind)),
				zap.Error(err),
			)
			return nil, o.fail(ctx, start, &issuance.GroupSubmissionError{
				Step:        group.Step,
				Kind:        group.Kind,
				Asset:       asset.PublicKey(),
				Holder:      holder,
				MetadataURI: uri,
				Completed:   append([]issuance.SubmissionHandle(nil), submissions...),
				Err:         err,
			}, group.Step)
		}
		submissions = append(submissions, handle)
		o.transition(ctx, func(p *Progress) {
			p.Submissions = append(p.Submissions, handle)
		})
	}

	o.transition(ctx, func(p *Progress) {
		p.State = issuance.State{Phase: issuance.PhaseSucceeded}
	})
	metrics.IssuancesTotal.WithLabelValues("succeeded", "").Inc()
	metrics.IssuanceDuration.WithLabelValues("succeeded").Observe(time.Since(start).Seconds())
	logger.Info("issuance succeeded",
		zap.String("asset", asset.String()),
		zap.String("signature", submissions[len(submissions)-1].Signature),
		zap.Duration("duration", time.Since(start)),
	)

	return &issuance.Result{
		Asset:       asset.PublicKey(),
		Holder:      holder,
		MetadataURI: uri,
		Handle:      submissions[len(submissions)-1],
		Submissions: submissions,
	}, nil
}

func (o *Orchestrator) publish(ctx context.Context, req issuance.Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.settings.publishTimeout)
	defer cancel()

	return o.publisher.Publish(ctx, metadata.Descriptor{
		Name:        req.Name,
		Symbol:      req.Symbol,
		Description: req.Description,
		Image:       req.ImageURI,
	})
}

func (o *Orchestrator) submit(
	ctx context.Context,
	group issuance.OperationGroup,
	asset issuance.AssetIdentity,
) (issuance.SubmissionHandle, error) {
	o.transition(ctx, func(p *Progress) {
		p.State = issuance.State{Phase: issuance.PhaseSubmittingGroup, Step: group.Step, Kind: group.Kind}
	})

	callCtx, cancel := context.WithTimeout(ctx, o.settings.submitTimeout)
	defer cancel()
	callCtx = issuance.WithBroadcastHook(callCtx, func(issuance.SubmissionHandle) {
		o.transition(ctx, func(p *Progress) {
			p.State = issuance.State{Phase: issuance.PhaseConfirming, Step: group.Step, Kind: group.Kind}
		})
	})

	var coSigners []types.Account
	if group.NeedsAssetSignature() {
		coSigners = []types.Account{asset.Signer()}
	}

	start := time.Now()
	handle, err := o.gateway.SubmitAndConfirm(callCtx, group, coSigners)
	metrics.GroupSubmitDuration.WithLabelValues(string(group.Kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GroupSubmissionsTotal.WithLabelValues(string(group.Kind), "error").Inc()
		return handle, err
	}
	metrics.GroupSubmissionsTotal.WithLabelValues(string(group.Kind), "confirmed").Inc()
	return handle, nil
}

func (o *Orchestrator) reset() {
	o.mu.Lock()
	o.progress = Progress{State: issuance.State{Phase: issuance.PhaseIdle}}
	o.mu.Unlock()
}

func (o *Orchestrator) transition(ctx context.Context, apply func(p *Progress)) {
	o.mu.Lock()
	apply(&o.progress)
	snapshot := o.progress
	snapshot.Submissions = append([]issuance.SubmissionHandle(nil), o.progress.Submissions...)
	o.mu.Unlock()

	if o.settings.observer != nil {
		o.settings.observer(ctx, snapshot)
	}
}

func (o *Orchestrator) fail(ctx context.Context, start time.Time, err error, step int) error {
	stage := issuance.StageValidation
	var staged issuance.StagedError
	if errors.As(err, &staged) {
		stage = staged.Stage()
	}

	o.transition(ctx, func(p *Progress) {
		p.State = issuance.State{Phase: issuance.PhaseFailed, Stage: stage, Step: step, Err: err}
	})
	metrics.IssuancesTotal.WithLabelValues("failed", string(stage)).Inc()
	metrics.IssuanceDuration.WithLabelValues("failed").Observe(time.Since(start).Seconds())
	return err
}

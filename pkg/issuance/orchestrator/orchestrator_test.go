package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/metadata"
)

func fooRequest() issuance.Request {
	return issuance.Request{
		Name:                "Foo",
		Symbol:              "FOO",
		Decimals:            6,
		InitialSupply:       1000,
		ImageURI:            "https://example.com/foo.png",
		Description:         "Foo token",
		RevokeMintAuthority: true,
	}
}

// recordObserver captures every transition for later assertions.
type recordObserver struct {
	mu     sync.Mutex
	states []string
	last   Progress
}

func (r *recordObserver) observe(_ context.Context, p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := p.State.String()
	if len(r.states) == 0 || r.states[len(r.states)-1] != s {
		r.states = append(r.states, s)
	}
	r.last = p
}

func TestExecute_Success(t *testing.T) {
	pub := &mockPublisher{}
	gw := newMockGateway()
	obs := &recordObserver{}

	o := New(pub, gw, WithObserver(obs.observe))
	res, err := o.Execute(context.Background(), fooRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := o.State().Phase; got != issuance.PhaseSucceeded {
		t.Fatalf("phase = %s, want succeeded", got)
	}
	if !reflect.DeepEqual(gw.steps(), []int{1, 2, 3, 4}) {
		t.Fatalf("submitted steps = %v, want [1 2 3 4]", gw.steps())
	}
	wantKinds := []issuance.GroupKind{
		issuance.GroupCreateAsset, issuance.GroupCreateHolder, issuance.GroupMintSupply, issuance.GroupRevokeAuthorities,
	}
	for i, s := range gw.submissions {
		if s.group.Kind != wantKinds[i] {
			t.Errorf("group %d kind = %s, want %s", i+1, s.group.Kind, wantKinds[i])
		}
	}
	if res.Handle.IsZero() {
		t.Fatal("final handle must not be empty")
	}
	if res.Handle.Signature != "sig-4-revoke-authorities" {
		t.Errorf("final handle = %q, want the last group's", res.Handle.Signature)
	}
	if res.Asset == (common.PublicKey{}) || len(res.Submissions) != 4 {
		t.Errorf("unexpected result: %+v", res)
	}
	if pub.published[0].Name != "Foo" || pub.published[0].Image != "https://example.com/foo.png" {
		t.Errorf("unexpected descriptor: %+v", pub.published[0])
	}

	wantStates := []string{
		"idle", "publishing-metadata",
		"submitting-group(1)", "confirming(1)",
		"submitting-group(2)", "confirming(2)",
		"submitting-group(3)", "confirming(3)",
		"submitting-group(4)", "confirming(4)",
		"succeeded",
	}
	// reset to idle is not observed
	if !reflect.DeepEqual(obs.states, wantStates[1:]) {
		t.Errorf("transitions = %v\nwant %v", obs.states, wantStates[1:])
	}
	if obs.last.Asset != res.Asset || len(obs.last.Submissions) != 4 {
		t.Error("observer should see the final progress")
	}
}

func TestExecute_AssetCoSignsOnlyFirstGroup(t *testing.T) {
	gw := newMockGateway()
	o := New(&mockPublisher{}, gw)

	res, err := o.Execute(context.Background(), fooRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for i, s := range gw.submissions {
		switch {
		case i == 0:
			if len(s.coSigners) != 1 || s.coSigners[0].PublicKey != res.Asset {
				t.Errorf("group 1 must be co-signed by the asset identity")
			}
		case len(s.coSigners) != 0:
			t.Errorf("group %d has unexpected co-signers", i+1)
		}
	}
}

func TestExecute_NoRevocationRunsThreeGroups(t *testing.T) {
	gw := newMockGateway()
	req := fooRequest()
	req.RevokeMintAuthority = false

	if _, err := New(&mockPublisher{}, gw).Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !reflect.DeepEqual(gw.steps(), []int{1, 2, 3}) {
		t.Fatalf("submitted steps = %v, want [1 2 3]", gw.steps())
	}
}

func TestExecute_PublishFailure(t *testing.T) {
	boom := errors.New("uploadcare unavailable")
	pub := &mockPublisher{PublishFunc: func(context.Context, metadata.Descriptor) (string, error) {
		return "", boom
	}}
	gw := newMockGateway()
	o := New(pub, gw)

	_, err := o.Execute(context.Background(), fooRequest())

	var perr *issuance.MetadataPublishError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *MetadataPublishError, got %T (%v)", err, err)
	}
	if !errors.Is(err, boom) {
		t.Error("cause must be preserved")
	}
	if len(gw.submissions) != 0 {
		t.Fatalf("gateway received %d calls, want 0", len(gw.submissions))
	}
	st := o.State()
	if st.Phase != issuance.PhaseFailed || st.Stage != issuance.StageMetadata {
		t.Errorf("state = %s, want failed(metadata)", st)
	}
}

func TestExecute_PublishTimeout(t *testing.T) {
	pub := &mockPublisher{PublishFunc: func(ctx context.Context, _ metadata.Descriptor) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	gw := newMockGateway()
	o := New(pub, gw, WithPublishTimeout(20*time.Millisecond))

	_, err := o.Execute(context.Background(), fooRequest())
	var perr *issuance.MetadataPublishError
	if !errors.As(err, &perr) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected publish timeout, got %v", err)
	}
	if len(gw.submissions) != 0 {
		t.Fatal("no group may be submitted after a publish timeout")
	}
}

func TestExecute_SecondGroupFails(t *testing.T) {
	boom := errors.New("blockhash expired")
	gw := newMockGateway()
	gw.FailAtStep = 2
	gw.FailErr = boom
	o := New(&mockPublisher{}, gw)

	_, err := o.Execute(context.Background(), fooRequest())

	var gerr *issuance.GroupSubmissionError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GroupSubmissionError, got %T (%v)", err, err)
	}
	if gerr.Step != 2 || gerr.Kind != issuance.GroupCreateHolder {
		t.Errorf("failed step = %d (%s), want 2 (create-holder)", gerr.Step, gerr.Kind)
	}
	if !errors.Is(err, boom) {
		t.Error("cause must be preserved")
	}
	if !reflect.DeepEqual(gw.steps(), []int{1, 2}) {
		t.Fatalf("submitted steps = %v, want group 1 once then group 2", gw.steps())
	}
	if len(gerr.Completed) != 1 || gerr.Completed[0].Signature != "sig-1-create-asset" {
		t.Errorf("completed = %+v", gerr.Completed)
	}
	if gerr.Asset == (common.PublicKey{}) || gerr.MetadataURI == "" {
		t.Error("partial state must be reported for manual resumption")
	}
	st := o.State()
	if st.Phase != issuance.PhaseFailed || st.Stage != issuance.StageSubmission || st.Step != 2 {
		t.Errorf("state = %s, want failed(submission, 2)", st)
	}
}

func TestExecute_FirstGroupFails(t *testing.T) {
	gw := newMockGateway()
	gw.FailAtStep = 1
	gw.FailErr = errors.New("insufficient funds")

	_, err := New(&mockPublisher{}, gw).Execute(context.Background(), fooRequest())
	var gerr *issuance.GroupSubmissionError
	if !errors.As(err, &gerr) || gerr.Step != 1 || len(gerr.Completed) != 0 {
		t.Fatalf("expected step 1 failure with nothing completed, got %v", err)
	}
	if len(gw.submissions) != 1 {
		t.Errorf("gateway calls = %d, want 1", len(gw.submissions))
	}
}

func TestExecute_SubmitTimeout(t *testing.T) {
	gw := newMockGateway()
	gw.SubmitFunc = func(ctx context.Context, group issuance.OperationGroup) (issuance.SubmissionHandle, error) {
		if group.Step == 3 {
			<-ctx.Done()
			return issuance.SubmissionHandle{}, ctx.Err()
		}
		return issuance.SubmissionHandle{Signature: "ok"}, nil
	}
	o := New(&mockPublisher{}, gw, WithSubmitTimeout(20*time.Millisecond))

	_, err := o.Execute(context.Background(), fooRequest())
	var gerr *issuance.GroupSubmissionError
	if !errors.As(err, &gerr) || gerr.Step != 3 || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected step 3 timeout, got %v", err)
	}
	if len(gw.submissions) != 3 {
		t.Errorf("gateway calls = %d, want 3", len(gw.submissions))
	}
}

func TestExecute_InvalidRequest(t *testing.T) {
	pub := &mockPublisher{}
	gw := newMockGateway()
	req := fooRequest()
	req.Decimals = 0

	_, err := New(pub, gw).Execute(context.Background(), req)
	var verr *issuance.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if pub.calls() != 0 || len(gw.submissions) != 0 {
		t.Fatal("no remote call may happen for an invalid request")
	}
}

func TestExecute_PayerUnavailable(t *testing.T) {
	pub := &mockPublisher{}
	gw := newMockGateway()
	gw.PayerErr = errors.New("wallet locked")

	_, err := New(pub, gw).Execute(context.Background(), fooRequest())
	var verr *issuance.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if pub.calls() != 0 {
		t.Fatal("metadata must not be published without a signing identity")
	}
}

func TestExecute_ReinvokeUsesFreshIdentity(t *testing.T) {
	gw := newMockGateway()
	o := New(&mockPublisher{}, gw)

	first, err := o.Execute(context.Background(), fooRequest())
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := o.Execute(context.Background(), fooRequest())
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if first.Asset == second.Asset {
		t.Fatal("each run must use a new asset identity")
	}

	firstCreate := gw.submissions[0].group.Operations[0].(issuance.CreateAssetAccount)
	secondCreate := gw.submissions[4].group.Operations[0].(issuance.CreateAssetAccount)
	if firstCreate.Asset == secondCreate.Asset {
		t.Error("second run must build groups for the new identity")
	}
}

func TestExecute_InjectedIdentity(t *testing.T) {
	acc := types.NewAccount()
	o := New(&mockPublisher{}, newMockGateway(), WithIdentityGenerator(func() issuance.AssetIdentity {
		return issuance.AssetIdentityFromAccount(acc)
	}))
	res, err := o.Execute(context.Background(), fooRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Asset != acc.PublicKey {
		t.Errorf("asset = %s, want injected %s", res.Asset.ToBase58(), acc.PublicKey.ToBase58())
	}
}

func TestExecute_Busy(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	pub := &mockPublisher{PublishFunc: func(context.Context, metadata.Descriptor) (string, error) {
		close(entered)
		<-release
		return "https://cdn.example/x/", nil
	}}
	o := New(pub, newMockGateway())

	done := make(chan error, 1)
	go func() {
		_, err := o.Execute(context.Background(), fooRequest())
		done <- err
	}()
	<-entered

	if _, err := o.Execute(context.Background(), fooRequest()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Execute: %v", err)
	}
}

func TestExecute_CallerCancelDoesNotStopSequence(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gw := newMockGateway()
	gw.SubmitFunc = func(callCtx context.Context, group issuance.OperationGroup) (issuance.SubmissionHandle, error) {
		if group.Step == 1 {
			cancel()
		}
		if err := callCtx.Err(); err != nil {
			return issuance.SubmissionHandle{}, err
		}
		return issuance.SubmissionHandle{Signature: fmt.Sprintf("sig-%d", group.Step)}, nil
	}

	res, err := New(&mockPublisher{}, gw, WithSubmitTimeout(time.Second)).Execute(ctx, fooRequest())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !reflect.DeepEqual(gw.steps(), []int{1, 2, 3, 4}) {
		t.Fatalf("submitted steps = %v, want [1 2 3 4]", gw.steps())
	}
	if res.Handle.Signature != "sig-4" {
		t.Errorf("final handle = %q", res.Handle.Signature)
	}
}

func TestExecute_CallerDeadlineIsNotInherited(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	pub := &mockPublisher{PublishFunc: func(callCtx context.Context, _ metadata.Descriptor) (string, error) {
		if err := callCtx.Err(); err != nil {
			return "", err
		}
		return "https://cdn.example/x/", nil
	}}
	gw := newMockGateway()

	if _, err := New(pub, gw).Execute(ctx, fooRequest()); err != nil {
		t.Fatalf("Execute on an expired caller context: %v", err)
	}
	if len(gw.steps()) != 4 {
		t.Errorf("submitted steps = %v, want 4 groups", gw.steps())
	}
}

func TestExecute_PublishesAndBuildsTrimmedRequest(t *testing.T) {
	pub := &mockPublisher{}
	gw := newMockGateway()
	req := fooRequest()
	req.Name = strings.Repeat("A", 32) + "        "
	req.Symbol = " FOO "

	if _, err := New(pub, gw).Execute(context.Background(), req); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := pub.published[0].Name; got != strings.Repeat("A", 32) {
		t.Errorf("published name = %q (%d bytes)", got, len(got))
	}
	if pub.published[0].Symbol != "FOO" {
		t.Errorf("published symbol = %q", pub.published[0].Symbol)
	}

	var meta issuance.InitMetadata
	for _, op := range gw.submissions[0].group.Operations {
		if m, ok := op.(issuance.InitMetadata); ok {
			meta = m
		}
	}
	if meta.Name != strings.Repeat("A", 32) || meta.Symbol != "FOO" {
		t.Errorf("ledger metadata = %q/%q", meta.Name, meta.Symbol)
	}
}

func TestExecute_MultibyteNameOverByteLimit(t *testing.T) {
	pub := &mockPublisher{}
	gw := newMockGateway()
	req := fooRequest()
	req.Name = strings.Repeat("é", 32)

	_, err := New(pub, gw).Execute(context.Background(), req)
	var verr *issuance.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if pub.calls() != 0 || len(gw.submissions) != 0 {
		t.Fatal("no remote call may happen for an invalid request")
	}
}

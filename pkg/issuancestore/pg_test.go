package issuancestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/pgutil"
	mghelper "github.com/chainsafe/token-launchpad/pkg/pgutil/migrations"
)

func setupStore(t *testing.T) (context.Context, *pgStore) {
	t.Helper()

	ctx := context.Background()
	db := pgutil.SetupTestDB(t)

	if err := mghelper.CreateSchema(ctx, db, &IssuanceDao{}); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return ctx, NewStore(db)
}

func newRecord(requestedBy string) *issuance.Record {
	return &issuance.Record{
		Request: issuance.Request{
			Name:                "Foo",
			Symbol:              "FOO",
			Decimals:            6,
			InitialSupply:       18_446_744_073_709_551_615,
			ImageURI:            "https://x/i.png",
			Description:         "d",
			RevokeMintAuthority: true,
		},
		Status:      issuance.PhaseIdle,
		RequestedBy: requestedBy,
	}
}

func TestCreateAndGetIssuance(t *testing.T) {
	ctx, store := setupStore(t)

	rec := newRecord("alice")
	if err := store.CreateIssuance(ctx, rec); err != nil {
		t.Fatalf("CreateIssuance() failed: %v", err)
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		t.Fatalf("expected generated uuid, got %q", rec.ID)
	}

	got, err := store.GetIssuance(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetIssuance() failed: %v", err)
	}
	if got.Request != rec.Request {
		t.Errorf("request mismatch: got %+v want %+v", got.Request, rec.Request)
	}
	if got.Status != issuance.PhaseIdle || got.RequestedBy != "alice" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Asset != "" || got.FailedStep != 0 || len(got.Signatures) != 0 {
		t.Errorf("optional fields should be empty: %+v", got)
	}
}

func TestUpdateIssuance_PersistsPartialProgress(t *testing.T) {
	ctx, store := setupStore(t)

	rec := newRecord("")
	if err := store.CreateIssuance(ctx, rec); err != nil {
		t.Fatalf("CreateIssuance() failed: %v", err)
	}

	rec.Status = issuance.PhaseFailed
	rec.MetadataURI = "https://ucarecdn.com/abc/"
	rec.Asset = "Asset1111111111111111111111111111111111111"
	rec.Holder = "Holder111111111111111111111111111111111111"
	rec.Signatures = []string{"sig1", "sig2"}
	rec.FailedStage = issuance.StageSubmission
	rec.FailedStep = 3
	rec.CurrentStep = 3
	rec.Error = "transaction failed on-chain"
	if err := store.UpdateIssuance(ctx, rec); err != nil {
		t.Fatalf("UpdateIssuance() failed: %v", err)
	}

	got, err := store.GetIssuance(ctx, rec.ID)
	if err != nil {
		t.Fatalf("GetIssuance() failed: %v", err)
	}
	if got.Status != issuance.PhaseFailed || got.FailedStage != issuance.StageSubmission || got.FailedStep != 3 {
		t.Errorf("failure not persisted: %+v", got)
	}
	if len(got.Signatures) != 2 || got.Signatures[1] != "sig2" {
		t.Errorf("signatures = %v", got.Signatures)
	}
	if got.MetadataURI != rec.MetadataURI || got.Asset != rec.Asset || got.Holder != rec.Holder {
		t.Errorf("partial state mismatch: %+v", got)
	}
	if !got.UpdatedAt.After(got.CreatedAt) && !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateIssuance_NotFound(t *testing.T) {
	ctx, store := setupStore(t)

	rec := newRecord("")
	rec.ID = uuid.NewString()
	if err := store.UpdateIssuance(ctx, rec); !errors.Is(err, ErrIssuanceNotFound) {
		t.Fatalf("expected ErrIssuanceNotFound, got %v", err)
	}
}

func TestGetIssuance_NotFound(t *testing.T) {
	ctx, store := setupStore(t)

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := store.GetIssuance(ctx, id); !errors.Is(err, ErrIssuanceNotFound) {
			t.Errorf("GetIssuance(%q): expected ErrIssuanceNotFound, got %v", id, err)
		}
	}
}

func TestListIssuances(t *testing.T) {
	ctx, store := setupStore(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i, who := range []string{"alice", "bob", "alice"} {
		rec := newRecord(who)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if i == 2 {
			rec.Status = issuance.PhaseSucceeded
		}
		if err := store.CreateIssuance(ctx, rec); err != nil {
			t.Fatalf("CreateIssuance() failed: %v", err)
		}
	}

	all, err := store.ListIssuances(ctx)
	if err != nil {
		t.Fatalf("ListIssuances() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if !all[0].CreatedAt.After(all[1].CreatedAt) {
		t.Error("records should be newest first")
	}

	limited, err := store.ListIssuances(ctx, WithLimit(1))
	if err != nil || len(limited) != 1 {
		t.Fatalf("WithLimit(1): got %d records, err %v", len(limited), err)
	}

	alice, err := store.ListIssuances(ctx, WithRequestedBy("alice"))
	if err != nil || len(alice) != 2 {
		t.Fatalf("WithRequestedBy: got %d records, err %v", len(alice), err)
	}

	done, err := store.ListIssuances(ctx, WithStatus(issuance.PhaseSucceeded))
	if err != nil || len(done) != 1 {
		t.Fatalf("WithStatus: got %d records, err %v", len(done), err)
	}
}

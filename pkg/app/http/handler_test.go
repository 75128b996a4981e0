package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-launchpad/pkg/app/errors"
	"github.com/chainsafe/token-launchpad/pkg/config"
)

type renderedError struct {
	Error   string         `json:"error"`
	Code    int            `json:"code"`
	Details map[string]any `json:"details"`
}

func serve(t *testing.T, h HandlerFunc) (*httptest.ResponseRecorder, renderedError) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(h)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var got renderedError
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	return rec, got
}

func TestHandleError_ServiceErrorWithDetails(t *testing.T) {
	rec, got := serve(t, func(http.ResponseWriter, *http.Request) error {
		err := apperrors.DependencyFailureError(errors.New("rpc down"), "ledger submission failed")
		return apperrors.WithDetails(err, map[string]any{"failed_step": 2})
	})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, rec.Code)
	}
	if got.Error != "ledger submission failed" || got.Code != http.StatusBadGateway {
		t.Fatalf("unexpected body: %+v", got)
	}
	if got.Details["failed_step"] != float64(2) {
		t.Fatalf("expected failed_step detail, got %v", got.Details)
	}
}

func TestHandleError_UnknownError(t *testing.T) {
	rec, got := serve(t, func(http.ResponseWriter, *http.Request) error {
		return errors.New("boom")
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if got.Error != "Unexpected Service Error" || got.Details != nil {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestHandleError_NoErrorPassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(func(w http.ResponseWriter, _ *http.Request) error {
		WriteJSON(w, http.StatusCreated, map[string]string{"ok": "yes"})
		return nil
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}
}

func TestServeAndWait_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeAndWait(ctx, http.NotFoundHandler(), zap.NewNop(), &config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ShutdownTimeout: time.Second,
		})
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ServeAndWait returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ServeAndWait did not return after cancel")
	}
}

func TestServeAndWait_NilArgs(t *testing.T) {
	if err := ServeAndWait(context.Background(), nil, nil, &config.ServerConfig{}); err == nil {
		t.Error("expected error for nil handler")
	}
	if err := ServeAndWait(context.Background(), http.NotFoundHandler(), nil, nil); err == nil {
		t.Error("expected error for nil config")
	}
}

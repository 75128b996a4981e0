// Package http provides chi-compatible handler helpers with uniform error rendering.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chainsafe/token-launchpad/internal/metrics"
	apperrors "github.com/chainsafe/token-launchpad/pkg/app/errors"
)

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// HandleError adapts an error-returning HandlerFunc to http.HandlerFunc.
//
//	r.Post("/issuances", http.HandleError(h.issue))
func HandleError(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			DefaultErrorHandler(w, err)
		}
	}
}

type errorResponse struct {
	ErrMsg     string         `json:"error"`
	ErrMsgCode int            `json:"code"`
	Details    map[string]any `json:"details,omitempty"`
}

// DefaultErrorHandler writes err as {error, code, details?}. Errors that are
// not ServiceErrors become a generic 500.
func DefaultErrorHandler(w http.ResponseWriter, err error) {
	resp := errorResponse{
		ErrMsg:     "Unexpected Service Error",
		ErrMsgCode: http.StatusInternalServerError,
	}

	category := apperrors.CategoryGeneralError
	var svcErr *apperrors.ServiceError
	if errors.As(err, &svcErr) {
		category = svcErr.Category
		resp.ErrMsg = svcErr.Message
		resp.ErrMsgCode = svcErr.StatusCode()
		resp.Details = svcErr.Details
	}
	metrics.ErrorsTotal.WithLabelValues("http", category.String()).Inc()

	WriteJSON(w, resp.ErrMsgCode, &resp)
}

// WriteJSON encodes data with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

package service

import (
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"path"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-launchpad/pkg/app/errors"
	apphttp "github.com/chainsafe/token-launchpad/pkg/app/http"
	"github.com/chainsafe/token-launchpad/pkg/issuance"
)

const maxBodyBytes = 64 << 10

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// IssuanceResponse is the JSON view of a record. UISupply is the initial
// supply expressed in whole tokens.
type IssuanceResponse struct {
	*issuance.Record
	UISupply string `json:"ui_supply"`
}

// RegisterRoutes registers the issuance endpoints on r.
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Route("/issuances", func(r chi.Router) {
		r.Post("/", apphttp.HandleError(h.issue))
		r.Get("/", apphttp.HandleError(h.list))
		r.Get("/{id}", apphttp.HandleError(h.get))
	})
}

func (h *HTTP) issue(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.BadRequestError(err, "failed to read request")
	}

	var req issuance.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return apperrors.BadRequestError(err, "invalid JSON")
	}

	rec, err := h.service.Issue(r.Context(), &req)
	if err != nil {
		return err
	}
	w.Header().Set("Location", path.Join(r.URL.Path, rec.ID))
	apphttp.WriteJSON(w, http.StatusAccepted, toResponse(rec))
	return nil
}

func (h *HTTP) get(w http.ResponseWriter, r *http.Request) error {
	rec, err := h.service.GetIssuance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	apphttp.WriteJSON(w, http.StatusOK, toResponse(rec))
	return nil
}

func (h *HTTP) list(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()
	filter := issuance.ListFilter{
		Status:      issuance.Phase(query.Get("status")),
		RequestedBy: query.Get("requested_by"),
	}
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return apperrors.BadRequestError(err, "limit must be a non-negative integer")
		}
		filter.Limit = n
	}

	records, err := h.service.ListIssuances(r.Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]IssuanceResponse, len(records))
	for i, rec := range records {
		resp[i] = toResponse(rec)
	}
	apphttp.WriteJSON(w, http.StatusOK, map[string]any{"issuances": resp})
	return nil
}

func toResponse(rec *issuance.Record) IssuanceResponse {
	return IssuanceResponse{
		Record:   rec,
		UISupply: UISupply(rec.Request.InitialSupply, rec.Request.Decimals),
	}
}

// UISupply renders a raw base-unit amount in whole tokens, e.g. 1500000 with
// 6 decimals is "1.5".
func UISupply(raw uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals)).String()
}

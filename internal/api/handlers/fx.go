package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/response"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
)

// FxHandler handles HTTP requests for exchange rate endpoints.
type FxHandler struct {
	fxService *service.FxService
}

// NewFxHandler creates a new FxHandler.
func NewFxHandler(fxService *service.FxService) *FxHandler {
	return &FxHandler{fxService: fxService}
}

// LatestRate handles GET requests for the most recent stored rate of a
// currency.
//
// Endpoint: GET /api/fx/rate/{currency}
// Response: 200 OK with FxRate
// Error: 404 Not Found if no rate has been stored for the currency
func (h *FxHandler) LatestRate(w http.ResponseWriter, r *http.Request) {
	currencyTag := chi.URLParam(r, "currency")

	rate, err := h.fxService.LatestRate(r.Context(), currencyTag)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRefreshRates)
		return
	}

	response.RespondJSON(w, http.StatusOK, rate)
}

// RefreshRates handles POST requests to fetch fresh rates from the configured
// provider and store them.
//
// Endpoint: POST /api/fx/refresh
// Response: 204 No Content
// Error: 404 Not Found if no provider has been configured
func (h *FxHandler) RefreshRates(w http.ResponseWriter, r *http.Request) {
	if err := h.fxService.RefreshRates(r.Context()); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRefreshRates)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetFxConfig handles GET requests for the rate provider configuration. The
// stored API token stays encrypted at rest and is never serialized.
//
// Endpoint: GET /api/fx/config
// Response: 200 OK with FxProviderConfig
// Error: 404 Not Found if no provider has been configured
func (h *FxHandler) GetFxConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.fxService.GetConfig(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFxConfig)
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}

// UpdateFxConfig handles PUT requests to set the rate provider. Omitting
// apiToken keeps the previously stored token.
//
// Endpoint: PUT /api/fx/config
// Response: 200 OK with FxProviderConfig
// Error: 400 Bad Request if the base URL is missing
func (h *FxHandler) UpdateFxConfig(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateFxConfigRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.BaseURL == "" {
		response.RespondError(w, http.StatusBadRequest, "baseUrl is required", "")
		return
	}

	cfg, err := h.fxService.SetConfig(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFxConfig)
		return
	}

	response.RespondJSON(w, http.StatusOK, cfg)
}

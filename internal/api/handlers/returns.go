package handlers

import (
	"net/http"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/response"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/validation"
)

// ReturnHandler handles HTTP requests for return calculation endpoints.
// Valuations are caller-supplied; the ledger contributes the net flows.
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new ReturnHandler.
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// FundReturn handles POST requests to compute one fund's time-weighted
// return over a period.
//
// Endpoint: POST /api/returns/fund
// Response: 200 OK with FundReturn
// Error: 400 Bad Request if the period or valuation is invalid
// Error: 403 Forbidden if the fund belongs to another client
func (h *ReturnHandler) FundReturn(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.FundReturnRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateFundReturnRequest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ret, err := h.returnService.FundReturn(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeReturns)
		return
	}

	response.RespondJSON(w, http.StatusOK, ret)
}

// ClientReturn handles POST requests to compute a client's aggregate return
// across several funds, weighted by starting value.
//
// Endpoint: POST /api/returns/client
// Response: 200 OK with ClientReturn
// Error: 400 Bad Request if the period or any valuation is invalid
func (h *ReturnHandler) ClientReturn(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ClientReturnRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateClientReturnRequest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ret, err := h.returnService.ClientReturn(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeReturns)
		return
	}

	response.RespondJSON(w, http.StatusOK, ret)
}

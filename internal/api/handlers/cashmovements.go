package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/response"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/validation"
)

// CashMovementHandler handles HTTP requests for cash movement endpoints.
type CashMovementHandler struct {
	movementService *service.CashMovementService
}

// NewCashMovementHandler creates a new CashMovementHandler.
func NewCashMovementHandler(movementService *service.CashMovementService) *CashMovementHandler {
	return &CashMovementHandler{movementService: movementService}
}

// CreateCashMovement handles POST requests to record a deposit or withdrawal.
// Withdrawals pass through the liquidity gate before being persisted.
//
// Endpoint: POST /api/cash-movement
// Response: 201 Created with CashMovement
// Error: 400 Bad Request if validation fails or the exchange rate is missing
// Error: 422 Unprocessable Entity if a withdrawal exceeds available liquidity
func (h *CashMovementHandler) CreateCashMovement(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCashMovementRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCashMovement(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	movement, err := h.movementService.ApplyMovement(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordMovement)
		return
	}

	response.RespondJSON(w, http.StatusCreated, movement)
}

// MovementsPerClient handles GET requests to list a client's cash movements,
// newest first.
//
// Endpoint: GET /api/client/{uuid}/cash-movements?limit=50&offset=0
// Response: 200 OK with array of CashMovement
func (h *CashMovementHandler) MovementsPerClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")
	limit, offset := parsePagination(r)

	movements, err := h.movementService.ListMovements(r.Context(), clientID, limit, offset)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveCashMovements.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, movements)
}

// DeleteCashMovement handles DELETE requests to remove a recorded movement.
//
// Endpoint: DELETE /api/cash-movement/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the movement does not exist
func (h *CashMovementHandler) DeleteCashMovement(w http.ResponseWriter, r *http.Request) {
	movementID := chi.URLParam(r, "uuid")

	if err := h.movementService.DeleteMovement(r.Context(), movementID); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordMovement)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

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

// AllocationHandler handles HTTP requests for allocation endpoints.
type AllocationHandler struct {
	allocationService *service.AllocationService
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationService *service.AllocationService) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService}
}

// CreateAllocation handles POST requests to move money between a client's
// liquidity pool and one of their funds. Assignments are checked against
// available liquidity, unassignments against the fund's available balance.
//
// Endpoint: POST /api/allocation
// Response: 201 Created with Allocation
// Error: 403 Forbidden if the fund belongs to another client
// Error: 422 Unprocessable Entity if the gate rejects the amount
func (h *AllocationHandler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAllocationRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAllocation(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	allocation, err := h.allocationService.ApplyAllocation(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordAllocation)
		return
	}

	response.RespondJSON(w, http.StatusCreated, allocation)
}

// AllocationsPerClient handles GET requests to list a client's allocations,
// newest first. An optional fundId query parameter narrows the listing to a
// single fund.
//
// Endpoint: GET /api/client/{uuid}/allocations?fundId={fundId}&limit=50&offset=0
// Response: 200 OK with array of Allocation
func (h *AllocationHandler) AllocationsPerClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")
	fundID := r.URL.Query().Get("fundId")
	limit, offset := parsePagination(r)

	if fundID != "" {
		if err := validation.ValidateUUID(fundID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid fundId", err.Error())
			return
		}
	}

	allocations, err := h.allocationService.ListAllocations(r.Context(), clientID, fundID, limit, offset)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAllocations.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, allocations)
}

// DeleteAllocation handles DELETE requests to remove an allocation.
//
// Endpoint: DELETE /api/allocation/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the allocation does not exist
func (h *AllocationHandler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	allocationID := chi.URLParam(r, "uuid")

	if err := h.allocationService.DeleteAllocation(r.Context(), allocationID); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordAllocation)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

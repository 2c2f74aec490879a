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

// FundHandler handles HTTP requests for fund endpoints.
type FundHandler struct {
	fundService    *service.FundService
	balanceService *service.BalanceService
}

// NewFundHandler creates a new FundHandler with the provided service dependencies.
func NewFundHandler(fundService *service.FundService, balanceService *service.BalanceService) *FundHandler {
	return &FundHandler{
		fundService:    fundService,
		balanceService: balanceService,
	}
}

// CreateFund handles POST requests to create a new fund for a client.
//
// Endpoint: POST /api/fund
// Response: 201 Created with Fund
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the client does not exist
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFund(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveFunds)
		return
	}

	response.RespondJSON(w, http.StatusCreated, fund)
}

// FundsPerClient handles GET requests to list a client's funds.
//
// Endpoint: GET /api/client/{uuid}/funds
// Response: 200 OK with array of Fund
func (h *FundHandler) FundsPerClient(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "uuid")

	funds, err := h.fundService.GetFundsByClient(r.Context(), clientID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// FundBalance handles GET requests for one fund's derived balance. The fund
// must belong to the client named in the query, enforcing tenant isolation
// on the read path as well as the write path.
//
// Endpoint: GET /api/fund/{uuid}/balance?clientId={clientId}
// Response: 200 OK with FundBalance (two-decimal figures)
// Error: 403 Forbidden if the fund belongs to another client
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) FundBalance(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")
	clientID := r.URL.Query().Get("clientId")

	if err := validation.ValidateUUID(clientID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid clientId", err.Error())
		return
	}

	balance, err := h.balanceService.FundBalance(r.Context(), clientID, fundID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToComputeBalances)
		return
	}

	response.RespondJSON(w, http.StatusOK, service.RoundedFundBalance(balance))
}

package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/response"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/validation"
)

// TradeHandler handles HTTP requests for trade endpoints.
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeService: tradeService}
}

// CreateTrade handles POST requests to record a buy or sell inside a fund.
// Buys are checked against the fund's available balance; sells against the
// held position, with the sale proceeds credited back to the fund.
//
// Endpoint: POST /api/trade
// Response: 201 Created with Trade
// Error: 400 Bad Request if validation fails or the sell exceeds the position
// Error: 403 Forbidden if the fund belongs to another client
// Error: 422 Unprocessable Entity if a buy exceeds the fund's available balance
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTrade(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	trade, err := h.tradeService.ApplyTrade(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordTrade)
		return
	}

	response.RespondJSON(w, http.StatusCreated, trade)
}

// parseTradeFilter reads the optional startDate/endDate query parameters
// (YYYY-MM-DD) plus pagination into a filter. Writes a 400 and returns false
// on a malformed date.
func parseTradeFilter(w http.ResponseWriter, r *http.Request) (repository.TradeFilter, bool) {
	limit, offset := parsePagination(r)
	filter := repository.TradeFilter{Limit: limit, Offset: offset}

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid startDate", err.Error())
			return filter, false
		}
		filter.StartDate = start
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid endDate", err.Error())
			return filter, false
		}
		filter.EndDate = end
	}

	return filter, true
}

// TradesPerFund handles GET requests to list a fund's trades, newest first.
//
// Endpoint: GET /api/fund/{uuid}/trades?startDate=...&endDate=...&limit=50&offset=0
// Response: 200 OK with array of Trade
func (h *TradeHandler) TradesPerFund(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseTradeFilter(w, r)
	if !ok {
		return
	}
	filter.FundID = chi.URLParam(r, "uuid")

	trades, err := h.tradeService.ListTrades(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// TradesPerClient handles GET requests to list a client's trades across all
// of their funds, newest first.
//
// Endpoint: GET /api/client/{uuid}/trades?startDate=...&endDate=...&limit=50&offset=0
// Response: 200 OK with array of Trade
func (h *TradeHandler) TradesPerClient(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseTradeFilter(w, r)
	if !ok {
		return
	}
	filter.ClientID = chi.URLParam(r, "uuid")

	trades, err := h.tradeService.ListTrades(r.Context(), filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTrades.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, trades)
}

// GetTrade handles GET requests for a single trade.
//
// Endpoint: GET /api/trade/{uuid}
// Response: 200 OK with Trade
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	trade, err := h.tradeService.GetTrade(r.Context(), tradeID)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTrades)
		return
	}

	response.RespondJSON(w, http.StatusOK, trade)
}

// DeleteTrade handles DELETE requests to remove a trade. Any system-origin
// allocation the trade produced is removed with it by the store's cascade,
// keeping the fund's fold consistent.
//
// Endpoint: DELETE /api/trade/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the trade does not exist
func (h *TradeHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "uuid")

	if err := h.tradeService.DeleteTrade(r.Context(), tradeID); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordTrade)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

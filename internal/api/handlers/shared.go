package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/response"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
)

// parseJSON decodes a request body into the given type.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	return v, err
}

// parsePagination reads limit/offset query parameters with UI-friendly
// defaults. Listing endpoints paginate; balance folds never do.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}

	return limit, offset
}

// respondServiceError maps service-layer errors onto HTTP statuses. Gate
// rejections become 422 with the structured numeric payload; domain rule
// violations and missing rates are 4xx; unknown failures (store timeouts,
// connectivity) surface as 500 so callers can tell "invalid request" from
// "could not evaluate".
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	var liquidityErr *apperrors.InsufficientLiquidityError
	if errors.As(err, &liquidityErr) {
		response.RespondRejection(w, "insufficient liquidity", liquidityErr.AvailableUSD, liquidityErr.RequestedUSD)
		return
	}

	var fundBalanceErr *apperrors.InsufficientFundBalanceError
	if errors.As(err, &fundBalanceErr) {
		response.RespondRejection(w, "insufficient fund balance", fundBalanceErr.AvailableUSD, fundBalanceErr.RequestedUSD)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrClientNotFound),
		errors.Is(err, apperrors.ErrFundNotFound),
		errors.Is(err, apperrors.ErrSecurityNotFound),
		errors.Is(err, apperrors.ErrCashMovementNotFound),
		errors.Is(err, apperrors.ErrAllocationNotFound),
		errors.Is(err, apperrors.ErrTradeNotFound),
		errors.Is(err, apperrors.ErrExchangeRateNotFound),
		errors.Is(err, apperrors.ErrFxConfigNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, apperrors.ErrFundOwnershipMismatch):
		response.RespondError(w, http.StatusForbidden, apperrors.ErrFundOwnershipMismatch.Error(), "")

	case errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrMissingExchangeRate),
		errors.Is(err, apperrors.ErrUnknownCurrency),
		errors.Is(err, apperrors.ErrInsufficientPosition),
		errors.Is(err, apperrors.ErrInvalidDateRange):
		response.RespondError(w, http.StatusBadRequest, err.Error(), "")

	default:
		response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
	}
}

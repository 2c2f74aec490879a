package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
)

// ValidTradeSide contains the allowed trade side values.
var ValidTradeSide = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateCreateTrade validates a trade creation request.
//
// Required fields:
//   - clientId, fundId: Must be valid UUIDs
//   - securityName: Must be non-empty (created on first reference)
//   - date: Must be in YYYY-MM-DD format
//   - side: Must be one of: buy, sell
//   - quantity: Must be a positive integer
//   - unitPrice: Must be positive
//   - currency: Must be a recognized currency tag
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}
	if err := ValidateUUID(req.FundID); err != nil {
		return err
	}

	if strings.TrimSpace(req.SecurityName) == "" {
		errors["securityName"] = "securityName is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Side) == "" {
		errors["side"] = "side is required"
	} else if !ValidTradeSide[req.Side] {
		errors["side"] = fmt.Sprintf("invalid side: %s", req.Side)
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.UnitPrice <= 0.0 {
		errors["unitPrice"] = "unitPrice must be positive"
	}

	if !ValidCurrency[req.Currency] {
		errors["currency"] = fmt.Sprintf("invalid currency: %s", req.Currency)
	}

	if req.FxRate != nil && *req.FxRate <= 0.0 {
		errors["fxRate"] = "fxRate must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
)

// ValidMovementKind contains the allowed cash movement kind values.
var ValidMovementKind = map[string]bool{
	"deposit": true, "withdrawal": true,
}

// ValidateCreateCashMovement validates a cash movement creation request.
//
// Required fields:
//   - clientId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - kind: Must be one of: deposit, withdrawal
//   - amount: Must be positive
//   - currency: Must be a recognized currency tag
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateCashMovement(req request.CreateCashMovementRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !ValidMovementKind[req.Kind] {
		errors["kind"] = fmt.Sprintf("invalid kind: %s", req.Kind)
	}

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
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

package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
)

// ValidAllocationKind contains the allowed allocation kind values.
var ValidAllocationKind = map[string]bool{
	"assign": true, "unassign": true,
}

// ValidateCreateAllocation validates an allocation creation request.
// Origin is never accepted from callers: manual is implied, system rows are
// written only by the ledger itself.
func ValidateCreateAllocation(req request.CreateAllocationRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}
	if err := ValidateUUID(req.FundID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Kind) == "" {
		errors["kind"] = "kind is required"
	} else if !ValidAllocationKind[req.Kind] {
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

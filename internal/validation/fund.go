package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
)

// ValidStrategy contains the allowed fund strategy tags.
var ValidStrategy = map[string]bool{
	"retirement": true, "goal": true, "open-ended": true,
}

// ValidateCreateFund validates a fund creation request. Strategy metadata is
// shape-checked only; the ledger treats it as opaque.
func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Strategy) == "" {
		errors["strategy"] = "strategy is required"
	} else if !ValidStrategy[req.Strategy] {
		errors["strategy"] = fmt.Sprintf("invalid strategy: %s", req.Strategy)
	}

	if req.TargetDate != nil {
		if _, err := time.Parse("2006-01-02", *req.TargetDate); err != nil {
			errors["targetDate"] = err.Error()
		}
	}

	if req.TargetAmount != nil && *req.TargetAmount <= 0.0 {
		errors["targetAmount"] = "targetAmount must be positive"
	}

	if req.TargetCurrency != nil && !ValidCurrency[*req.TargetCurrency] {
		errors["targetCurrency"] = fmt.Sprintf("invalid currency: %s", *req.TargetCurrency)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateCreateClient validates a client creation request.
func ValidateCreateClient(req request.CreateClientRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &Error{Fields: map[string]string{"name": "name is required"}}
	}
	return nil
}

package validation

import (
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
)

// ValidateFundReturnRequest validates a single-fund return request.
func ValidateFundReturnRequest(req request.FundReturnRequest) error {
	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}
	if err := ValidateUUID(req.Valuation.FundID); err != nil {
		return err
	}
	return validateRange(req.StartDate, req.EndDate)
}

// ValidateClientReturnRequest validates a client-level return request.
func ValidateClientReturnRequest(req request.ClientReturnRequest) error {
	if err := ValidateUUID(req.ClientID); err != nil {
		return err
	}
	for _, v := range req.Valuations {
		if err := ValidateUUID(v.FundID); err != nil {
			return err
		}
	}
	return validateRange(req.StartDate, req.EndDate)
}

func validateRange(startStr, endStr string) error {
	errors := make(map[string]string)

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		errors["startDate"] = err.Error()
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		errors["endDate"] = err.Error()
	}

	if len(errors) == 0 && end.Before(start) {
		errors["endDate"] = "endDate must not precede startDate"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

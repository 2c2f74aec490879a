package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidUUID indicates that a provided ID is not a valid UUID.
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// Error aggregates field-specific validation messages for one request.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidCurrency contains the allowed currency tags. The authoritative enum
// lives in the currency package; this map exists so request validation can
// reject unknown tags before any service work.
var ValidCurrency = map[string]bool{
	"USD": true, "USDT": true, "ARS": true,
}

// Package currency normalizes tagged amounts into USD. The supported set is a
// closed enum; unknown tags are rejected at the boundary instead of being
// silently defaulted.
package currency

import (
	"fmt"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
)

// Currency identifies one of the supported denominations.
type Currency string

const (
	// USD is the base denomination of every derived balance.
	USD Currency = "USD"
	// USDT is treated as USD-equivalent (1:1 stablecoin).
	USDT Currency = "USDT"
	// ARS requires an explicit ARS-per-USD conversion rate.
	ARS Currency = "ARS"
)

// Parse validates a currency tag against the supported set.
func Parse(tag string) (Currency, error) {
	switch Currency(tag) {
	case USD, USDT, ARS:
		return Currency(tag), nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownCurrency, tag)
	}
}

// IsUSDEquivalent reports whether amounts in c need no conversion.
func (c Currency) IsUSDEquivalent() bool {
	return c == USD || c == USDT
}

// ToUSD converts amount, denominated in c, into USD. For non-USD currencies
// rate is the native-per-USD quote and must be positive; a missing or
// non-positive rate fails with ErrMissingExchangeRate. Deterministic, no side
// effects: cash movements, allocations and trade pricing all convert through
// this one function.
func ToUSD(amount float64, c Currency, rate float64) (float64, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}

	if c.IsUSDEquivalent() {
		return amount, nil
	}

	if rate <= 0 {
		return 0, fmt.Errorf("%w: currency %s", apperrors.ErrMissingExchangeRate, c)
	}

	return amount / rate, nil
}

// ToNative converts a USD amount back into c at the given rate. Inverse of
// ToUSD for the same rate, within floating tolerance.
func ToNative(amountUSD float64, c Currency, rate float64) (float64, error) {
	if amountUSD <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}

	if c.IsUSDEquivalent() {
		return amountUSD, nil
	}

	if rate <= 0 {
		return 0, fmt.Errorf("%w: currency %s", apperrors.ErrMissingExchangeRate, c)
	}

	return amountUSD * rate, nil
}

package apperrors

import (
	"errors"
	"fmt"
)

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrClientNotFound indicates that a client with the given ID does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrSecurityNotFound indicates that a security with the given ID does not exist.
	ErrSecurityNotFound = errors.New("security not found")

	// ErrCashMovementNotFound indicates that a cash movement with the given ID does not exist.
	ErrCashMovementNotFound = errors.New("cash movement not found")

	// ErrAllocationNotFound indicates that an allocation with the given ID does not exist.
	ErrAllocationNotFound = errors.New("allocation not found")

	// ErrTradeNotFound indicates that a trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")

	// ErrExchangeRateNotFound indicates no stored rate for the requested currency.
	ErrExchangeRateNotFound = errors.New("exchange rate not found")

	// ErrFxConfigNotFound indicates the FX provider has not been configured.
	ErrFxConfigNotFound = errors.New("fx provider configuration not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrMissingExchangeRate indicates a non-USD amount was submitted without a
	// usable conversion rate. Recoverable by re-submitting with a rate.
	ErrMissingExchangeRate = errors.New("exchange rate required for currency conversion")

	// ErrUnknownCurrency indicates a currency tag outside the supported set.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrInvalidAmount indicates a non-positive amount or quantity was submitted
	// to a mutating operation. Rejected before any store access.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrFundOwnershipMismatch indicates the fund does not belong to the stated
	// client. Treated as a client error, never a generic server failure.
	ErrFundOwnershipMismatch = errors.New("fund does not belong to client")

	// ErrInsufficientPosition indicates a sell for more units of a security than
	// the fund currently holds.
	ErrInsufficientPosition = errors.New("insufficient security position for sale")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These are surfaced distinctly from validation rejections so
// a caller can tell "your request was invalid" from "we could not evaluate it".
var (
	ErrFailedToRetrieveClients       = errors.New("failed to retrieve clients")
	ErrFailedToRetrieveFunds         = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveCashMovements = errors.New("failed to retrieve cash movements")
	ErrFailedToRetrieveAllocations   = errors.New("failed to retrieve allocations")
	ErrFailedToRetrieveTrades        = errors.New("failed to retrieve trades")
	ErrFailedToRecordMovement        = errors.New("failed to record cash movement")
	ErrFailedToRecordAllocation      = errors.New("failed to record allocation")
	ErrFailedToRecordTrade           = errors.New("failed to record trade")
	ErrFailedToComputeBalances       = errors.New("failed to compute balances")
	ErrFailedToComputeReturns        = errors.New("failed to compute returns")
	ErrFailedToRefreshRates          = errors.New("failed to refresh exchange rates")
	ErrFailedToRetrieveFxConfig      = errors.New("failed to retrieve fx configuration")
)

// InsufficientLiquidityError is returned when a withdrawal or allocation asks
// for more than the client's available (unallocated) liquidity. It carries the
// numbers a caller needs to render a useful message without a second round trip.
type InsufficientLiquidityError struct {
	AvailableUSD float64
	RequestedUSD float64
}

func (e *InsufficientLiquidityError) Error() string {
	return fmt.Sprintf("insufficient liquidity: requested %.2f USD, available %.2f USD",
		e.RequestedUSD, e.AvailableUSD)
}

// Shortfall returns how much the request exceeded the available amount.
func (e *InsufficientLiquidityError) Shortfall() float64 {
	return e.RequestedUSD - e.AvailableUSD
}

// InsufficientFundBalanceError is returned when a purchase costs more than the
// fund's available cash float.
type InsufficientFundBalanceError struct {
	FundID       string
	AvailableUSD float64
	RequestedUSD float64
}

func (e *InsufficientFundBalanceError) Error() string {
	return fmt.Sprintf("insufficient fund balance: requested %.2f USD, available %.2f USD",
		e.RequestedUSD, e.AvailableUSD)
}

// Shortfall returns how much the purchase exceeded the fund's available cash.
func (e *InsufficientFundBalanceError) Shortfall() float64 {
	return e.RequestedUSD - e.AvailableUSD
}

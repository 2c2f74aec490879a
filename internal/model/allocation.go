package model

import "time"

// Allocation kinds and origins.
const (
	AllocationAssign   = "assign"
	AllocationUnassign = "unassign"

	OriginManual = "manual"
	OriginSystem = "system"
)

// Allocation is a transfer of already-deposited client cash into or out of a
// fund's float. Origin "system" rows are written by the ledger itself when a
// sale recovers cash into the fund; TradeID links such a row to its trade so
// the two live and die together. Both origins fold identically.
type Allocation struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	FundID    string    `json:"fundId"`
	Date      time.Time `json:"date"`
	Kind      string    `json:"kind"`
	AmountUSD float64   `json:"amountUsd"`
	Origin    string    `json:"origin"`
	TradeID   *string   `json:"tradeId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

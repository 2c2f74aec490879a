package model

import "time"

// Cash movement kinds.
const (
	MovementDeposit    = "deposit"
	MovementWithdrawal = "withdrawal"
)

// CashMovement is a client-level deposit or withdrawal of external cash.
// AmountUSD is computed once at creation time and stored; it is never
// recomputed from a later rate.
type CashMovement struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"clientId"`
	Date      time.Time `json:"date"`
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	FxRate    *float64  `json:"fxRate,omitempty"`
	AmountUSD float64   `json:"amountUsd"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

package model

import "time"

// Fund strategy tags. The metadata behind them is opaque to the ledger and
// only consumed by the reporting layer.
const (
	StrategyRetirement = "retirement"
	StrategyGoal       = "goal"
	StrategyOpenEnded  = "open-ended"
)

// Fund represents a named bucket of a client's capital following one
// investment strategy. Target fields are optional strategy metadata.
type Fund struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"clientId"`
	Name           string     `json:"name"`
	Strategy       string     `json:"strategy"`
	TargetDate     *time.Time `json:"targetDate,omitempty"`
	TargetAmount   *float64   `json:"targetAmount,omitempty"`
	TargetCurrency *string    `json:"targetCurrency,omitempty"`
	CreatedAt      time.Time  `json:"createdAt,omitempty"`
}

// Security is a named instrument, created on first reference.
type Security struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

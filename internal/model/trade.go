package model

import "time"

// Trade sides.
const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)

// Trade is a buy or sell of a security inside a fund. UnitPriceUSD is fixed
// at creation time using the submitted or historical rate.
type Trade struct {
	ID           string    `json:"id"`
	ClientID     string    `json:"clientId"`
	FundID       string    `json:"fundId"`
	SecurityID   string    `json:"securityId"`
	Date         time.Time `json:"date"`
	Side         string    `json:"side"`
	Quantity     int64     `json:"quantity"`
	UnitPrice    float64   `json:"unitPrice"`
	Currency     string    `json:"currency"`
	FxRate       *float64  `json:"fxRate,omitempty"`
	UnitPriceUSD float64   `json:"unitPriceUsd"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// CostUSD is the trade's total USD cost (quantity * unit price in USD).
func (t Trade) CostUSD() float64 {
	return float64(t.Quantity) * t.UnitPriceUSD
}

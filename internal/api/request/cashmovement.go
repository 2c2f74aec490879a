package request

type CreateCashMovementRequest struct {
	ClientID string   `json:"clientId"`
	Date     string   `json:"date"`
	Kind     string   `json:"kind"`
	Amount   float64  `json:"amount"`
	Currency string   `json:"currency"`
	FxRate   *float64 `json:"fxRate,omitempty"`
}

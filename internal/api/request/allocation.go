package request

type CreateAllocationRequest struct {
	ClientID string   `json:"clientId"`
	FundID   string   `json:"fundId"`
	Date     string   `json:"date"`
	Kind     string   `json:"kind"`
	Amount   float64  `json:"amount"`
	Currency string   `json:"currency"`
	FxRate   *float64 `json:"fxRate,omitempty"`
}

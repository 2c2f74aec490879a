package request

type CreateTradeRequest struct {
	ClientID     string   `json:"clientId"`
	FundID       string   `json:"fundId"`
	SecurityName string   `json:"securityName"`
	Date         string   `json:"date"`
	Side         string   `json:"side"`
	Quantity     int64    `json:"quantity"`
	UnitPrice    float64  `json:"unitPrice"`
	Currency     string   `json:"currency"`
	FxRate       *float64 `json:"fxRate,omitempty"`
}

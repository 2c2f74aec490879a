package request

type CreateFundRequest struct {
	ClientID       string   `json:"clientId"`
	Name           string   `json:"name"`
	Strategy       string   `json:"strategy"`
	TargetDate     *string  `json:"targetDate,omitempty"`
	TargetAmount   *float64 `json:"targetAmount,omitempty"`
	TargetCurrency *string  `json:"targetCurrency,omitempty"`
}

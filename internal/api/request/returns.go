package request

// FundValuation is a caller-supplied valuation pair for one fund: the fund's
// market value at the start and end of the measurement period.
type FundValuation struct {
	FundID     string  `json:"fundId"`
	ValueStart float64 `json:"valueStart"`
	ValueEnd   float64 `json:"valueEnd"`
}

type FundReturnRequest struct {
	ClientID  string        `json:"clientId"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Valuation FundValuation `json:"valuation"`
}

type ClientReturnRequest struct {
	ClientID   string          `json:"clientId"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Valuations []FundValuation `json:"valuations"`
}

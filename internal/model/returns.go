package model

// NetFlow summarizes manual allocation activity for a fund within a date
// range, signed by kind: assignments count as deposits into the fund.
type NetFlow struct {
	DepositsUSD    float64 `json:"depositsUsd"`
	WithdrawalsUSD float64 `json:"withdrawalsUsd"`
	NetUSD         float64 `json:"netUsd"`
}

// FundReturn is the time-weighted return of one fund over a period, together
// with the inputs used to compute it. Computable is false when the starting
// value was zero or negative, in which case Percent is reported as 0.
type FundReturn struct {
	FundID        string  `json:"fundId"`
	ValueStartUSD float64 `json:"valueStartUsd"`
	ValueEndUSD   float64 `json:"valueEndUsd"`
	NetFlow       NetFlow `json:"netFlow"`
	Percent       float64 `json:"percent"`
	Computable    bool    `json:"computable"`
}

// ClientReturn aggregates per-fund returns for one client: values and flows
// sum across funds, the headline percentage averages only computable TWRs.
type ClientReturn struct {
	ClientID      string       `json:"clientId"`
	TotalValueUSD float64      `json:"totalValueUsd"`
	NetFlowsUSD   float64      `json:"netFlowsUsd"`
	Percent       float64      `json:"percent"`
	Funds         []FundReturn `json:"funds"`
}

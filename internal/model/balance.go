package model

// ClientLiquidity is the derived client-level cash state. Never stored;
// always recomputed from the full cash movement and allocation history.
type ClientLiquidity struct {
	TotalUSD     float64 `json:"totalUsd"`     // deposits minus withdrawals
	AllocatedUSD float64 `json:"allocatedUsd"` // net manual assignments into funds
	AvailableUSD float64 `json:"availableUsd"` // total minus allocated
}

// FundBalance is the derived cash state of one fund's float.
type FundBalance struct {
	AllocatedUSD float64 `json:"allocatedUsd"` // net manual assignments
	InvestedUSD  float64 `json:"investedUsd"`  // sum of buy costs
	RecoveredUSD float64 `json:"recoveredUsd"` // sum of sell proceeds
	AvailableUSD float64 `json:"availableUsd"` // allocated - invested + recovered
}

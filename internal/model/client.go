package model

import "time"

// Client represents an investor owning a cash stream and zero or more funds.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ClientDashboard bundles the client's liquidity with every fund balance for
// the overview screen, built in a single pass per event collection.
type ClientDashboard struct {
	Client    Client                 `json:"client"`
	Liquidity ClientLiquidity        `json:"liquidity"`
	Funds     map[string]FundBalance `json:"funds"`
}

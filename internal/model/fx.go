package model

import "time"

// FxRate is a stored daily snapshot of a currency's native-per-USD rate.
type FxRate struct {
	ID       string    `json:"id"`
	Currency string    `json:"currency"`
	Rate     float64   `json:"rate"`
	Date     time.Time `json:"date"`
}

// FxProviderConfig holds the external quote provider settings. The API token
// is encrypted at rest and never serialized back to callers.
type FxProviderConfig struct {
	ID                 string     `json:"id"`
	BaseURL            string     `json:"baseUrl"`
	APIToken           string     `json:"-"`
	AutoRefreshEnabled bool       `json:"autoRefreshEnabled"`
	LastRefreshAt      *time.Time `json:"lastRefreshAt,omitempty"`
}

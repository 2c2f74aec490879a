package fxapi

// Quote is the provider's daily quote for one currency, expressed as native
// units per USD.
type Quote struct {
	Currency string  `json:"currency"`
	Buy      float64 `json:"buy"`
	Sell     float64 `json:"sell"`
	Date     string  `json:"date"`
}

// Package fxapi wraps the external exchange-rate provider's HTTP API.
package fxapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client provides methods for fetching currency quotes from the configured
// rate provider.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new provider client with default HTTP settings.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// GetQuote fetches the current quote for a currency from the provider.
// token is optional; when set it is sent as a bearer credential.
func (c *Client) GetQuote(ctx context.Context, baseURL, token, currencyTag string) (Quote, error) {
	url := fmt.Sprintf("%s/rates/%s", baseURL, currencyTag)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build rate request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to fetch rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Quote{}, fmt.Errorf("rate provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return Quote{}, fmt.Errorf("failed to decode rate response: %w", err)
	}

	if quote.Sell <= 0 {
		return Quote{}, fmt.Errorf("rate provider returned non-positive rate for %s", currencyTag)
	}

	return quote, nil
}

package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/currency"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/fxapi"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/service"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/testutil"
)

func newFxServiceWithKey(t *testing.T, db *sql.DB) *service.FxService {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}

	svc, err := service.NewFxService(
		repository.NewFxRateRepository(db),
		repository.NewFxConfigRepository(db),
		fxapi.NewClient(),
		key.Encode(),
	)
	if err != nil {
		t.Fatalf("Failed to create fx service: %v", err)
	}

	return svc
}

// TestFxService_ResolveRate tests rate resolution precedence.
//
// WHY: Every USD normalization rides on this order: USD-equivalents skip
// conversion, a submitted rate wins, and only then the latest stored
// snapshot. Silent defaults would fix wrong USD amounts forever.
func TestFxService_ResolveRate(t *testing.T) {
	t.Run("USD equivalents resolve to nil", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFxService(t, db)

		for _, cur := range []currency.Currency{currency.USD, currency.USDT} {
			rate, err := svc.ResolveRate(context.Background(), cur, nil)
			if err != nil {
				t.Fatalf("ResolveRate(%s) returned unexpected error: %v", cur, err)
			}
			if rate != nil {
				t.Errorf("ResolveRate(%s) = %v, want nil", cur, *rate)
			}
		}
	})

	t.Run("supplied rate wins over stored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFxService(t, db)

		testutil.NewFxRate("ARS", 1250).Build(t, db)
		supplied := 1000.0

		rate, err := svc.ResolveRate(context.Background(), currency.ARS, &supplied)
		if err != nil {
			t.Fatalf("ResolveRate() returned unexpected error: %v", err)
		}
		if rate == nil || *rate != 1000 {
			t.Errorf("ResolveRate() = %v, want 1000", rate)
		}
	})

	t.Run("falls back to the latest stored snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFxService(t, db)

		testutil.NewFxRate("ARS", 1100).WithDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)
		testutil.NewFxRate("ARS", 1250).WithDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Build(t, db)

		rate, err := svc.ResolveRate(context.Background(), currency.ARS, nil)
		if err != nil {
			t.Fatalf("ResolveRate() returned unexpected error: %v", err)
		}
		if rate == nil || *rate != 1250 {
			t.Errorf("ResolveRate() = %v, want 1250 (latest)", rate)
		}
	})

	t.Run("missing rate fails explicitly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFxService(t, db)

		_, err := svc.ResolveRate(context.Background(), currency.ARS, nil)
		if !errors.Is(err, apperrors.ErrMissingExchangeRate) {
			t.Errorf("ResolveRate() = %v, want ErrMissingExchangeRate", err)
		}
	})

	t.Run("non-positive supplied rate fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFxService(t, db)

		supplied := -1.0
		_, err := svc.ResolveRate(context.Background(), currency.ARS, &supplied)
		if !errors.Is(err, apperrors.ErrMissingExchangeRate) {
			t.Errorf("ResolveRate() = %v, want ErrMissingExchangeRate", err)
		}
	})
}

// TestFxService_Config tests provider configuration storage.
//
// WHY: The API token must round-trip through encryption and never come back
// in plaintext from the read path.
func TestFxService_Config(t *testing.T) {
	t.Run("stores and reads back the configuration", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newFxServiceWithKey(t, db)

		token := "secret-token"
		_, err := svc.SetConfig(context.Background(), request.UpdateFxConfigRequest{
			BaseURL:            "https://rates.example.com",
			APIToken:           &token,
			AutoRefreshEnabled: true,
		})
		if err != nil {
			t.Fatalf("SetConfig() returned unexpected error: %v", err)
		}

		cfg, err := svc.GetConfig(context.Background())
		if err != nil {
			t.Fatalf("GetConfig() returned unexpected error: %v", err)
		}

		if cfg.BaseURL != "https://rates.example.com" {
			t.Errorf("BaseURL = %s, want https://rates.example.com", cfg.BaseURL)
		}
		if !cfg.AutoRefreshEnabled {
			t.Error("Expected AutoRefreshEnabled = true")
		}
		if cfg.APIToken == token {
			t.Error("API token stored in plaintext")
		}
		if cfg.APIToken == "" {
			t.Error("Expected an encrypted token to be stored")
		}
	})

	t.Run("omitting the token keeps the stored one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := newFxServiceWithKey(t, db)

		token := "secret-token"
		first, err := svc.SetConfig(context.Background(), request.UpdateFxConfigRequest{
			BaseURL:            "https://rates.example.com",
			APIToken:           &token,
			AutoRefreshEnabled: true,
		})
		if err != nil {
			t.Fatalf("SetConfig() returned unexpected error: %v", err)
		}

		second, err := svc.SetConfig(context.Background(), request.UpdateFxConfigRequest{
			BaseURL:            "https://rates2.example.com",
			AutoRefreshEnabled: false,
		})
		if err != nil {
			t.Fatalf("SetConfig() returned unexpected error: %v", err)
		}

		if second.APIToken != first.APIToken {
			t.Error("Expected the stored token to survive an update without one")
		}
		if second.BaseURL != "https://rates2.example.com" {
			t.Errorf("BaseURL = %s, want https://rates2.example.com", second.BaseURL)
		}
	})

	t.Run("storing a token without a key fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFxService(t, db)

		token := "secret-token"
		_, err := svc.SetConfig(context.Background(), request.UpdateFxConfigRequest{
			BaseURL:  "https://rates.example.com",
			APIToken: &token,
		})
		if err == nil {
			t.Error("Expected an error when no encryption key is configured")
		}
	})

	t.Run("auto refresh defaults to off without configuration", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFxService(t, db)

		if svc.AutoRefreshEnabled(context.Background()) {
			t.Error("Expected AutoRefreshEnabled = false with no stored config")
		}
	})
}

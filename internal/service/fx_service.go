package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/api/request"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/currency"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/fxapi"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/repository"
)

// convertibleCurrencies are the currencies the daily refresh snapshots.
var convertibleCurrencies = []currency.Currency{currency.ARS}

// FxService manages stored exchange rates and the provider configuration.
// The provider API token is encrypted with fernet before it touches the
// database and decrypted only for outbound provider calls.
type FxService struct {
	rateRepo   *repository.FxRateRepository
	configRepo *repository.FxConfigRepository
	client     *fxapi.Client
	key        *fernet.Key
}

// NewFxService creates a new FxService. encryptionKey is a base64 fernet key;
// it may be empty, in which case provider tokens cannot be stored.
func NewFxService(
	rateRepo *repository.FxRateRepository,
	configRepo *repository.FxConfigRepository,
	client *fxapi.Client,
	encryptionKey string,
) (*FxService, error) {
	s := &FxService{
		rateRepo:   rateRepo,
		configRepo: configRepo,
		client:     client,
	}

	if encryptionKey != "" {
		key, err := fernet.DecodeKey(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode fx encryption key: %w", err)
		}
		s.key = key
	}

	return s, nil
}

// ResolveRate determines the conversion rate to use for an amount in the
// given currency: the caller-supplied rate when present, otherwise the latest
// stored historical rate. USD-equivalent currencies need no rate and resolve
// to nil. A convertible currency with neither a supplied nor a stored rate
// fails with ErrMissingExchangeRate; it is never silently defaulted.
func (s *FxService) ResolveRate(ctx context.Context, cur currency.Currency, supplied *float64) (*float64, error) {
	if cur.IsUSDEquivalent() {
		return nil, nil
	}

	if supplied != nil {
		if *supplied <= 0 {
			return nil, fmt.Errorf("%w: non-positive rate for %s", apperrors.ErrMissingExchangeRate, cur)
		}
		return supplied, nil
	}

	rate, err := s.rateRepo.GetLatestRate(ctx, string(cur))
	if err != nil {
		return nil, fmt.Errorf("%w: no stored rate for %s", apperrors.ErrMissingExchangeRate, cur)
	}

	return &rate.Rate, nil
}

// LatestRate returns the most recent stored snapshot for a currency.
func (s *FxService) LatestRate(ctx context.Context, currencyTag string) (model.FxRate, error) {
	cur, err := currency.Parse(currencyTag)
	if err != nil {
		return model.FxRate{}, err
	}
	return s.rateRepo.GetLatestRate(ctx, string(cur))
}

// RefreshRates fetches today's quote for every convertible currency from the
// configured provider and stores the snapshots.
func (s *FxService) RefreshRates(ctx context.Context) error {
	cfg, err := s.configRepo.GetConfig(ctx)
	if err != nil {
		return err
	}

	token, err := s.decryptToken(cfg.APIToken)
	if err != nil {
		return err
	}

	today := time.Now().UTC()
	for _, cur := range convertibleCurrencies {
		quote, err := s.client.GetQuote(ctx, cfg.BaseURL, token, string(cur))
		if err != nil {
			return fmt.Errorf("failed to fetch %s quote: %w", cur, err)
		}

		rate := &model.FxRate{
			ID:       uuid.New().String(),
			Currency: string(cur),
			Rate:     quote.Sell,
			Date:     today,
		}
		if err := s.rateRepo.UpsertRate(ctx, rate); err != nil {
			return err
		}
	}

	return s.configRepo.MarkRefreshed(ctx, cfg.ID, today)
}

// GetConfig returns the provider configuration with the token kept opaque.
func (s *FxService) GetConfig(ctx context.Context) (model.FxProviderConfig, error) {
	return s.configRepo.GetConfig(ctx)
}

// SetConfig stores the provider configuration, encrypting the API token when
// one is supplied.
func (s *FxService) SetConfig(ctx context.Context, req request.UpdateFxConfigRequest) (model.FxProviderConfig, error) {
	cfg, err := s.configRepo.GetConfig(ctx)
	if err != nil {
		cfg = model.FxProviderConfig{ID: uuid.New().String()}
	}

	cfg.BaseURL = req.BaseURL
	cfg.AutoRefreshEnabled = req.AutoRefreshEnabled

	if req.APIToken != nil && *req.APIToken != "" {
		if s.key == nil {
			return model.FxProviderConfig{}, fmt.Errorf("fx encryption key not configured")
		}
		encrypted, err := fernet.EncryptAndSign([]byte(*req.APIToken), s.key)
		if err != nil {
			return model.FxProviderConfig{}, fmt.Errorf("failed to encrypt api token: %w", err)
		}
		cfg.APIToken = string(encrypted)
	}

	if err := s.configRepo.UpsertConfig(ctx, &cfg); err != nil {
		return model.FxProviderConfig{}, err
	}

	return cfg, nil
}

// AutoRefreshEnabled reports whether the scheduled refresh should run.
func (s *FxService) AutoRefreshEnabled(ctx context.Context) bool {
	cfg, err := s.configRepo.GetConfig(ctx)
	if err != nil {
		return false
	}
	return cfg.AutoRefreshEnabled
}

// decryptToken recovers the plaintext provider token from its stored
// ciphertext. An unset token decrypts to the empty string.
func (s *FxService) decryptToken(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}
	if s.key == nil {
		return "", fmt.Errorf("fx encryption key not configured")
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(ciphertext), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt api token")
	}

	return string(plaintext), nil
}

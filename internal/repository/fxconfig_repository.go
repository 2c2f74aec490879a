package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// FxConfigRepository provides data access methods for the fx_provider_config
// table. The API token column holds ciphertext; encryption is the FX
// service's concern.
type FxConfigRepository struct {
	db *sql.DB
}

// NewFxConfigRepository creates a new FxConfigRepository with the provided database connection.
func NewFxConfigRepository(db *sql.DB) *FxConfigRepository {
	return &FxConfigRepository{db: db}
}

// GetConfig retrieves the provider configuration.
// Returns apperrors.ErrFxConfigNotFound when the provider has not been set up.
func (r *FxConfigRepository) GetConfig(ctx context.Context) (model.FxProviderConfig, error) {
	query := `
		SELECT id, base_url, api_token, auto_refresh_enabled, last_refresh_at
		FROM fx_provider_config
		LIMIT 1
	`

	var cfg model.FxProviderConfig
	var apiToken, lastRefreshStr sql.NullString

	err := r.db.QueryRowContext(ctx, query).Scan(
		&cfg.ID,
		&cfg.BaseURL,
		&apiToken,
		&cfg.AutoRefreshEnabled,
		&lastRefreshStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FxProviderConfig{}, apperrors.ErrFxConfigNotFound
	}
	if err != nil {
		return model.FxProviderConfig{}, fmt.Errorf("failed to scan fx_provider_config: %w", err)
	}

	if apiToken.Valid {
		cfg.APIToken = apiToken.String
	}
	if lastRefreshStr.Valid {
		t, err := ParseTime(lastRefreshStr.String)
		if err != nil {
			return model.FxProviderConfig{}, fmt.Errorf("failed to parse date: %w", err)
		}
		cfg.LastRefreshAt = &t
	}

	return cfg, nil
}

// UpsertConfig stores the provider configuration, replacing any existing row.
func (r *FxConfigRepository) UpsertConfig(ctx context.Context, cfg *model.FxProviderConfig) error {
	query := `
		INSERT INTO fx_provider_config (id, base_url, api_token, auto_refresh_enabled, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			base_url = excluded.base_url,
			api_token = excluded.api_token,
			auto_refresh_enabled = excluded.auto_refresh_enabled,
			updated_at = CURRENT_TIMESTAMP
	`

	var apiToken any
	if cfg.APIToken != "" {
		apiToken = cfg.APIToken
	}

	if _, err := r.db.ExecContext(ctx, query, cfg.ID, cfg.BaseURL, apiToken, cfg.AutoRefreshEnabled); err != nil {
		return fmt.Errorf("failed to upsert fx provider config: %w", err)
	}

	return nil
}

// MarkRefreshed records the time of the last successful rate refresh.
func (r *FxConfigRepository) MarkRefreshed(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE fx_provider_config
		SET last_refresh_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, query, at.UTC().Format(time.RFC3339), id); err != nil {
		return fmt.Errorf("failed to mark fx refresh: %w", err)
	}

	return nil
}

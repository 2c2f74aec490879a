package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// FxRateRepository provides data access methods for the fx_rate table.
type FxRateRepository struct {
	db *sql.DB
}

// NewFxRateRepository creates a new FxRateRepository with the provided database connection.
func NewFxRateRepository(db *sql.DB) *FxRateRepository {
	return &FxRateRepository{db: db}
}

// UpsertRate stores a daily rate snapshot, replacing any earlier snapshot for
// the same currency and date.
func (r *FxRateRepository) UpsertRate(ctx context.Context, rate *model.FxRate) error {
	query := `
		INSERT INTO fx_rate (id, currency, rate, date)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(currency, date) DO UPDATE SET rate = excluded.rate
	`

	_, err := r.db.ExecContext(ctx, query,
		rate.ID,
		rate.Currency,
		rate.Rate,
		rate.Date.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fx rate: %w", err)
	}

	return nil
}

// GetLatestRate retrieves the most recent stored rate for a currency.
// Returns apperrors.ErrExchangeRateNotFound when no snapshot exists.
func (r *FxRateRepository) GetLatestRate(ctx context.Context, currency string) (model.FxRate, error) {
	query := `
		SELECT id, currency, rate, date
		FROM fx_rate
		WHERE currency = ?
		ORDER BY date DESC
		LIMIT 1
	`

	var rate model.FxRate
	var dateStr string

	err := r.db.QueryRowContext(ctx, query, currency).Scan(&rate.ID, &rate.Currency, &rate.Rate, &dateStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FxRate{}, apperrors.ErrExchangeRateNotFound
	}
	if err != nil {
		return model.FxRate{}, fmt.Errorf("failed to scan fx_rate: %w", err)
	}

	rate.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.FxRate{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return rate, nil
}

// GetRateForDate retrieves the most recent stored rate on or before the given
// date, for historical conversions.
func (r *FxRateRepository) GetRateForDate(ctx context.Context, currency string, date string) (model.FxRate, error) {
	query := `
		SELECT id, currency, rate, date
		FROM fx_rate
		WHERE currency = ? AND date <= ?
		ORDER BY date DESC
		LIMIT 1
	`

	var rate model.FxRate
	var dateStr string

	err := r.db.QueryRowContext(ctx, query, currency, date).Scan(&rate.ID, &rate.Currency, &rate.Rate, &dateStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FxRate{}, apperrors.ErrExchangeRateNotFound
	}
	if err != nil {
		return model.FxRate{}, fmt.Errorf("failed to scan fx_rate: %w", err)
	}

	rate.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.FxRate{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return rate, nil
}

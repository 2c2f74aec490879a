package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// InsertFund stores a new fund record with its strategy metadata.
func (r *FundRepository) InsertFund(ctx context.Context, fund *model.Fund) error {
	query := `
		INSERT INTO fund (id, client_id, name, strategy, target_date, target_amount, target_currency)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var targetDate any
	if fund.TargetDate != nil {
		targetDate = fund.TargetDate.Format("2006-01-02")
	}

	_, err := r.db.ExecContext(ctx, query,
		fund.ID,
		fund.ClientID,
		fund.Name,
		fund.Strategy,
		targetDate,
		fund.TargetAmount,
		fund.TargetCurrency,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	return nil
}

// GetFund retrieves a single fund by ID.
// Returns apperrors.ErrFundNotFound if no record exists.
func (r *FundRepository) GetFund(ctx context.Context, fundID string) (model.Fund, error) {
	query := `
		SELECT id, client_id, name, strategy, target_date, target_amount, target_currency, created_at
		FROM fund
		WHERE id = ?
	`

	var f model.Fund
	var targetDateStr, targetCurrency sql.NullString
	var targetAmount sql.NullFloat64
	var createdAtStr string

	err := r.db.QueryRowContext(ctx, query, fundID).Scan(
		&f.ID,
		&f.ClientID,
		&f.Name,
		&f.Strategy,
		&targetDateStr,
		&targetAmount,
		&targetCurrency,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to scan fund: %w", err)
	}

	if targetDateStr.Valid {
		date, err := ParseTime(targetDateStr.String)
		if err != nil {
			return model.Fund{}, fmt.Errorf("failed to parse date: %w", err)
		}
		f.TargetDate = &date
	}
	if targetAmount.Valid {
		f.TargetAmount = &targetAmount.Float64
	}
	if targetCurrency.Valid {
		f.TargetCurrency = &targetCurrency.String
	}

	f.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return f, nil
}

// GetFundsByClient retrieves every fund owned by the given client, ordered by name.
func (r *FundRepository) GetFundsByClient(ctx context.Context, clientID string) ([]model.Fund, error) {
	query := `
		SELECT id, client_id, name, strategy, target_date, target_amount, target_currency, created_at
		FROM fund
		WHERE client_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		var f model.Fund
		var targetDateStr, targetCurrency sql.NullString
		var targetAmount sql.NullFloat64
		var createdAtStr string

		err := rows.Scan(
			&f.ID,
			&f.ClientID,
			&f.Name,
			&f.Strategy,
			&targetDateStr,
			&targetAmount,
			&targetCurrency,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}

		if targetDateStr.Valid {
			date, err := ParseTime(targetDateStr.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse date: %w", err)
			}
			f.TargetDate = &date
		}
		if targetAmount.Valid {
			f.TargetAmount = &targetAmount.Float64
		}
		if targetCurrency.Valid {
			f.TargetCurrency = &targetCurrency.String
		}

		f.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// CashMovementRepository provides data access methods for the cash_movement
// table. It is pure retrieval and insertion; it never computes derived values.
type CashMovementRepository struct {
	db *sql.DB
}

// NewCashMovementRepository creates a new CashMovementRepository with the provided database connection.
func NewCashMovementRepository(db *sql.DB) *CashMovementRepository {
	return &CashMovementRepository{db: db}
}

// InsertCashMovement appends a new cash movement event.
func (r *CashMovementRepository) InsertCashMovement(ctx context.Context, m *model.CashMovement) error {
	query := `
		INSERT INTO cash_movement (id, client_id, date, kind, amount, currency, fx_rate, amount_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.ClientID,
		m.Date.Format("2006-01-02"),
		m.Kind,
		m.Amount,
		m.Currency,
		m.FxRate,
		m.AmountUSD,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cash movement: %w", err)
	}

	return nil
}

// GetAllCashMovements retrieves the full, unbounded cash movement history for
// a client, ordered by date. Balance folds must always read this, never a
// paginated slice.
func (r *CashMovementRepository) GetAllCashMovements(ctx context.Context, clientID string) ([]model.CashMovement, error) {
	query := `
		SELECT id, client_id, date, kind, amount, currency, fx_rate, amount_usd, created_at
		FROM cash_movement
		WHERE client_id = ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_movement table: %w", err)
	}
	defer rows.Close()

	return scanCashMovements(rows)
}

// ListCashMovements retrieves a page of cash movements for UI listing,
// newest first.
func (r *CashMovementRepository) ListCashMovements(ctx context.Context, clientID string, limit, offset int) ([]model.CashMovement, error) {
	query := `
		SELECT id, client_id, date, kind, amount, currency, fx_rate, amount_usd, created_at
		FROM cash_movement
		WHERE client_id = ?
		ORDER BY date DESC, created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash_movement table: %w", err)
	}
	defer rows.Close()

	return scanCashMovements(rows)
}

// GetCashMovement retrieves a single cash movement by ID.
// Returns apperrors.ErrCashMovementNotFound if no record exists.
func (r *CashMovementRepository) GetCashMovement(ctx context.Context, movementID string) (model.CashMovement, error) {
	query := `
		SELECT id, client_id, date, kind, amount, currency, fx_rate, amount_usd, created_at
		FROM cash_movement
		WHERE id = ?
	`

	rows, err := r.db.QueryContext(ctx, query, movementID)
	if err != nil {
		return model.CashMovement{}, fmt.Errorf("failed to query cash_movement table: %w", err)
	}
	defer rows.Close()

	movements, err := scanCashMovements(rows)
	if err != nil {
		return model.CashMovement{}, err
	}
	if len(movements) == 0 {
		return model.CashMovement{}, apperrors.ErrCashMovementNotFound
	}

	return movements[0], nil
}

// DeleteCashMovement removes a cash movement as an administrative correction.
// Returns apperrors.ErrCashMovementNotFound if no record was deleted.
func (r *CashMovementRepository) DeleteCashMovement(ctx context.Context, movementID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cash_movement WHERE id = ?`, movementID)
	if err != nil {
		return fmt.Errorf("failed to delete cash movement: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCashMovementNotFound
	}

	return nil
}

// scanCashMovements reads all rows from a cash_movement query result.
func scanCashMovements(rows *sql.Rows) ([]model.CashMovement, error) {
	movements := []model.CashMovement{}

	for rows.Next() {
		var m model.CashMovement
		var dateStr, createdAtStr string
		var fxRate sql.NullFloat64

		err := rows.Scan(
			&m.ID,
			&m.ClientID,
			&dateStr,
			&m.Kind,
			&m.Amount,
			&m.Currency,
			&fxRate,
			&m.AmountUSD,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash_movement table results: %w", err)
		}

		m.Date, err = ParseTime(dateStr)
		if err != nil || m.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		m.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		if fxRate.Valid {
			m.FxRate = &fxRate.Float64
		}

		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash_movement table: %w", err)
	}

	return movements, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// AllocationRepository provides data access methods for the allocation table.
type AllocationRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAllocationRepository creates a new AllocationRepository with the provided database connection.
func NewAllocationRepository(db *sql.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// WithTx returns a new AllocationRepository scoped to the provided transaction.
func (r *AllocationRepository) WithTx(tx *sql.Tx) *AllocationRepository {
	return &AllocationRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *AllocationRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertAllocation appends a new allocation event.
func (r *AllocationRepository) InsertAllocation(ctx context.Context, a *model.Allocation) error {
	query := `
		INSERT INTO allocation (id, client_id, fund_id, date, kind, amount_usd, origin, trade_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.ClientID,
		a.FundID,
		a.Date.Format("2006-01-02"),
		a.Kind,
		a.AmountUSD,
		a.Origin,
		a.TradeID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert allocation: %w", err)
	}

	return nil
}

// GetAllAllocations retrieves the full, unbounded allocation history for a
// client, ordered by date. When fundID is non-empty the history is scoped to
// that fund. Balance folds must always read this, never a paginated slice.
func (r *AllocationRepository) GetAllAllocations(ctx context.Context, clientID, fundID string) ([]model.Allocation, error) {
	query := `
		SELECT id, client_id, fund_id, date, kind, amount_usd, origin, trade_id, created_at
		FROM allocation
		WHERE client_id = ?
	`

	args := []any{clientID}
	if fundID != "" {
		query += ` AND fund_id = ?`
		args = append(args, fundID)
	}
	query += ` ORDER BY date ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation table: %w", err)
	}
	defer rows.Close()

	return scanAllocations(rows)
}

// GetAllocationsGroupedByFund retrieves every allocation for a client in a
// single query, grouped by fund ID. This feeds the batched balance
// calculation: one pass over the collection instead of one query per fund.
func (r *AllocationRepository) GetAllocationsGroupedByFund(ctx context.Context, clientID string) (map[string][]model.Allocation, error) {
	allocations, err := r.GetAllAllocations(ctx, clientID, "")
	if err != nil {
		return nil, err
	}

	byFund := make(map[string][]model.Allocation)
	for _, a := range allocations {
		byFund[a.FundID] = append(byFund[a.FundID], a)
	}

	return byFund, nil
}

// ListAllocations retrieves a page of allocations for UI listing, newest first.
// fundID is optional.
func (r *AllocationRepository) ListAllocations(ctx context.Context, clientID, fundID string, limit, offset int) ([]model.Allocation, error) {
	query := `
		SELECT id, client_id, fund_id, date, kind, amount_usd, origin, trade_id, created_at
		FROM allocation
		WHERE client_id = ?
	`

	args := []any{clientID}
	if fundID != "" {
		query += ` AND fund_id = ?`
		args = append(args, fundID)
	}
	query += ` ORDER BY date DESC, created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation table: %w", err)
	}
	defer rows.Close()

	return scanAllocations(rows)
}

// GetAllocation retrieves a single allocation by ID.
// Returns apperrors.ErrAllocationNotFound if no record exists.
func (r *AllocationRepository) GetAllocation(ctx context.Context, allocationID string) (model.Allocation, error) {
	query := `
		SELECT id, client_id, fund_id, date, kind, amount_usd, origin, trade_id, created_at
		FROM allocation
		WHERE id = ?
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, allocationID)
	if err != nil {
		return model.Allocation{}, fmt.Errorf("failed to query allocation table: %w", err)
	}
	defer rows.Close()

	allocations, err := scanAllocations(rows)
	if err != nil {
		return model.Allocation{}, err
	}
	if len(allocations) == 0 {
		return model.Allocation{}, apperrors.ErrAllocationNotFound
	}

	return allocations[0], nil
}

// DeleteAllocation removes an allocation as an administrative correction.
// Returns apperrors.ErrAllocationNotFound if no record was deleted.
func (r *AllocationRepository) DeleteAllocation(ctx context.Context, allocationID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM allocation WHERE id = ?`, allocationID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAllocationNotFound
	}

	return nil
}

// scanAllocations reads all rows from an allocation query result.
func scanAllocations(rows *sql.Rows) ([]model.Allocation, error) {
	allocations := []model.Allocation{}

	for rows.Next() {
		var a model.Allocation
		var dateStr, createdAtStr string
		var tradeID sql.NullString

		err := rows.Scan(
			&a.ID,
			&a.ClientID,
			&a.FundID,
			&dateStr,
			&a.Kind,
			&a.AmountUSD,
			&a.Origin,
			&tradeID,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation table results: %w", err)
		}

		a.Date, err = ParseTime(dateStr)
		if err != nil || a.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		a.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		if tradeID.Valid {
			a.TradeID = &tradeID.String
		}

		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocation table: %w", err)
	}

	return allocations, nil
}

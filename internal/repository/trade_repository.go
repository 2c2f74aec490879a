package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// TradeFilter narrows a trade listing. Zero values mean "no constraint".
type TradeFilter struct {
	ClientID   string
	FundID     string
	SecurityID string
	StartDate  time.Time
	EndDate    time.Time
	Limit      int
	Offset     int
}

// TradeRepository provides data access methods for the trade table.
type TradeRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// WithTx returns a new TradeRepository scoped to the provided transaction.
func (r *TradeRepository) WithTx(tx *sql.Tx) *TradeRepository {
	return &TradeRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TradeRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertTrade appends a new trade event.
func (r *TradeRepository) InsertTrade(ctx context.Context, t *model.Trade) error {
	query := `
		INSERT INTO trade (id, client_id, fund_id, security_id, date, side, quantity, unit_price, currency, fx_rate, unit_price_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.ClientID,
		t.FundID,
		t.SecurityID,
		t.Date.Format("2006-01-02"),
		t.Side,
		t.Quantity,
		t.UnitPrice,
		t.Currency,
		t.FxRate,
		t.UnitPriceUSD,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	return nil
}

// GetAllTradesByFund retrieves the full, unbounded trade history of a fund,
// ordered by date. Balance folds must always read this, never a paginated slice.
func (r *TradeRepository) GetAllTradesByFund(ctx context.Context, fundID string) ([]model.Trade, error) {
	query := tradeSelect + `
		WHERE fund_id = ?
		ORDER BY date ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// GetTradesGroupedByFund retrieves every trade for a client in a single
// query, grouped by fund ID. This feeds the batched balance calculation:
// one pass over the collection instead of one query per fund.
func (r *TradeRepository) GetTradesGroupedByFund(ctx context.Context, clientID string) (map[string][]model.Trade, error) {
	query := tradeSelect + `
		WHERE client_id = ?
		ORDER BY date ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades, err := scanTrades(rows)
	if err != nil {
		return nil, err
	}

	byFund := make(map[string][]model.Trade)
	for _, t := range trades {
		byFund[t.FundID] = append(byFund[t.FundID], t)
	}

	return byFund, nil
}

// ListTrades retrieves trades matching the filter for UI listing, newest
// first. Limit defaults to unpaginated when zero.
func (r *TradeRepository) ListTrades(ctx context.Context, filter TradeFilter) ([]model.Trade, error) {
	query := tradeSelect + ` WHERE 1=1`
	args := []any{}

	if filter.ClientID != "" {
		query += ` AND client_id = ?`
		args = append(args, filter.ClientID)
	}
	if filter.FundID != "" {
		query += ` AND fund_id = ?`
		args = append(args, filter.FundID)
	}
	if filter.SecurityID != "" {
		query += ` AND security_id = ?`
		args = append(args, filter.SecurityID)
	}
	if !filter.StartDate.IsZero() {
		query += ` AND date >= ?`
		args = append(args, filter.StartDate.Format("2006-01-02"))
	}
	if !filter.EndDate.IsZero() {
		query += ` AND date <= ?`
		args = append(args, filter.EndDate.Format("2006-01-02"))
	}

	query += ` ORDER BY date DESC, created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	return scanTrades(rows)
}

// GetTrade retrieves a single trade by ID.
// Returns apperrors.ErrTradeNotFound if no record exists.
func (r *TradeRepository) GetTrade(ctx context.Context, tradeID string) (model.Trade, error) {
	query := tradeSelect + ` WHERE id = ?`

	rows, err := r.getQuerier().QueryContext(ctx, query, tradeID)
	if err != nil {
		return model.Trade{}, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades, err := scanTrades(rows)
	if err != nil {
		return model.Trade{}, err
	}
	if len(trades) == 0 {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}

	return trades[0], nil
}

// DeleteTrade removes a trade as an administrative correction. A sell's
// companion system-origin allocation is removed by the trade_id cascade.
// Returns apperrors.ErrTradeNotFound if no record was deleted.
func (r *TradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM trade WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTradeNotFound
	}

	return nil
}

const tradeSelect = `
	SELECT id, client_id, fund_id, security_id, date, side, quantity, unit_price, currency, fx_rate, unit_price_usd, created_at
	FROM trade
`

// scanTrades reads all rows from a trade query result.
func scanTrades(rows *sql.Rows) ([]model.Trade, error) {
	trades := []model.Trade{}

	for rows.Next() {
		var t model.Trade
		var dateStr, createdAtStr string
		var fxRate sql.NullFloat64

		err := rows.Scan(
			&t.ID,
			&t.ClientID,
			&t.FundID,
			&t.SecurityID,
			&dateStr,
			&t.Side,
			&t.Quantity,
			&t.UnitPrice,
			&t.Currency,
			&fxRate,
			&t.UnitPriceUSD,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		if fxRate.Valid {
			t.FxRate = &fxRate.Float64
		}

		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}

	return trades, nil
}

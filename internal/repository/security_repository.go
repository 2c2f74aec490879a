package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// SecurityRepository provides data access methods for the security table.
type SecurityRepository struct {
	db *sql.DB
}

// NewSecurityRepository creates a new SecurityRepository with the provided database connection.
func NewSecurityRepository(db *sql.DB) *SecurityRepository {
	return &SecurityRepository{db: db}
}

// GetSecurity retrieves a single security by ID.
// Returns apperrors.ErrSecurityNotFound if no record exists.
func (r *SecurityRepository) GetSecurity(ctx context.Context, securityID string) (model.Security, error) {
	query := `
		SELECT id, name
		FROM security
		WHERE id = ?
	`

	var s model.Security
	err := r.db.QueryRowContext(ctx, query, securityID).Scan(&s.ID, &s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Security{}, apperrors.ErrSecurityNotFound
	}
	if err != nil {
		return model.Security{}, fmt.Errorf("failed to scan security: %w", err)
	}

	return s, nil
}

// GetOrCreateSecurity looks up a security by name and creates it when unknown.
// The upsert relies on the unique name constraint, so concurrent callers
// converge on the same row.
func (r *SecurityRepository) GetOrCreateSecurity(ctx context.Context, name string) (model.Security, error) {
	insertQuery := `
		INSERT INTO security (id, name)
		VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, insertQuery, uuid.New().String(), name); err != nil {
		return model.Security{}, fmt.Errorf("failed to insert security: %w", err)
	}

	selectQuery := `
		SELECT id, name
		FROM security
		WHERE name = ?
	`

	var s model.Security
	if err := r.db.QueryRowContext(ctx, selectQuery, name).Scan(&s.ID, &s.Name); err != nil {
		return model.Security{}, fmt.Errorf("failed to scan security: %w", err)
	}

	return s, nil
}

// GetAllSecurities retrieves every known security, ordered by name.
func (r *SecurityRepository) GetAllSecurities(ctx context.Context) ([]model.Security, error) {
	query := `
		SELECT id, name
		FROM security
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query security table: %w", err)
	}
	defer rows.Close()

	securities := []model.Security{}

	for rows.Next() {
		var s model.Security
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan security table results: %w", err)
		}
		securities = append(securities, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating security table: %w", err)
	}

	return securities, nil
}

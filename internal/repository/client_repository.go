package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/afiguera/Advisory-Ledger-Backend/internal/apperrors"
	"github.com/afiguera/Advisory-Ledger-Backend/internal/model"
)

// ClientRepository provides data access methods for the client table.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new ClientRepository with the provided database connection.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// InsertClient stores a new client record.
func (r *ClientRepository) InsertClient(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO client (id, name)
		VALUES (?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, client.ID, client.Name); err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}

	return nil
}

// GetClient retrieves a single client by ID.
// Returns apperrors.ErrClientNotFound if no record exists.
func (r *ClientRepository) GetClient(ctx context.Context, clientID string) (model.Client, error) {
	query := `
		SELECT id, name, created_at
		FROM client
		WHERE id = ?
	`

	var c model.Client
	var createdAtStr string

	err := r.db.QueryRowContext(ctx, query, clientID).Scan(&c.ID, &c.Name, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, apperrors.ErrClientNotFound
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to scan client: %w", err)
	}

	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return c, nil
}

// GetAllClients retrieves every client, ordered by name.
func (r *ClientRepository) GetAllClients(ctx context.Context) ([]model.Client, error) {
	query := `
		SELECT id, name, created_at
		FROM client
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query client table: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}

	for rows.Next() {
		var c model.Client
		var createdAtStr string

		if err := rows.Scan(&c.ID, &c.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan client table results: %w", err)
		}

		c.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		clients = append(clients, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client table: %w", err)
	}

	return clients, nil
}

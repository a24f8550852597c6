package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrosur/fincore/internal/domain"
	"github.com/hydrosur/fincore/internal/usecase"
)

// ClientRepository implements usecase.ClientDirectory against the clients
// table owned by the directory module. Read-only.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// GetClient retrieves a client by ID. A non-nil tx joins the caller's
// transaction snapshot.
func (r *ClientRepository) GetClient(ctx context.Context, tx usecase.Transaction, id string) (*domain.Client, error) {
	query := `
		SELECT id, name, district, credit_eligible
		FROM clients
		WHERE id = $1
	`

	var row pgx.Row
	if tx != nil {
		row = tx.(*Tx).PgxTx().QueryRow(ctx, query, id)
	} else {
		row = r.pool.QueryRow(ctx, query, id)
	}

	var client domain.Client
	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.District,
		&client.CreditEligible,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}

	return &client, nil
}

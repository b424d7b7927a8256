package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"estatehub_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transaction is a payment row linked to an inspection request.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Reference string    `json:"reference"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Transaction, error) {
	var t Transaction
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, reference, amount, status, created_at, updated_at
		FROM transactions
		WHERE id = $1
	`, id).Scan(&t.ID, &t.UserID, &t.Reference, &t.Amount, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, apperr.NotFound("transaction not found")
		}
		return Transaction{}, apperr.Internal(fmt.Sprintf("get transaction failed: %v", err))
	}
	return t, nil
}

// UpdateStatus stamps the gateway's verdict onto the stored row.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET status = $2, updated_at = now()
		WHERE id = $1
	`, id, status)
	if err != nil {
		return apperr.Internal(fmt.Sprintf("update transaction status failed: %v", err))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("transaction not found")
	}
	return nil
}

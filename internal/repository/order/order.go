package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"tracking/internal/entities"
	"tracking/internal/service/tracker"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	query := `
		SELECT id, status, created_at
		FROM orders
		WHERE id = $1`

	var orderEntity entities.Order
	err := r.querier.QueryRow(ctx, query, orderID).Scan(
		&orderEntity.ID,
		&orderEntity.Status,
		&orderEntity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tracker.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return &orderEntity, nil
}

package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"tracking/internal/entities"
	"tracking/internal/repository"
	"tracking/internal/service/tracker"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const deliveryColumns = `id, order_id, status, current_lat, current_lng, last_location_update_at,
		destination_lat, destination_lng, estimated_arrival_at, started_at, completed_at,
		created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	deliveryModifyDB := FromDomainModify(&deliveryModify)

	query := `
		INSERT INTO deliveries (order_id, status, destination_lat, destination_lng)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + deliveryColumns

	var deliveryDB DeliveryDB
	err := scanDelivery(r.querier.QueryRow(
		ctx,
		query,
		deliveryModifyDB.OrderID,
		deliveryModifyDB.Status,
		deliveryModifyDB.DestinationLat,
		deliveryModifyDB.DestinationLng,
	), &deliveryDB)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, tracker.ErrOrderAlreadyTracked
		}
		return nil, fmt.Errorf("unexpected delivery repository create error: %w", err)
	}

	return ToDomain(&deliveryDB), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE id = $1`

	var deliveryDB DeliveryDB
	err := scanDelivery(r.querier.QueryRow(ctx, query, id), &deliveryDB)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tracker.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository getbyid error: %w", err)
	}

	return ToDomain(&deliveryDB), nil
}

func (r *Repository) GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE order_id = $1`

	var deliveryDB DeliveryDB
	err := scanDelivery(r.querier.QueryRow(ctx, query, orderID), &deliveryDB)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tracker.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected delivery repository getbyorderid error: %w", err)
	}

	return ToDomain(&deliveryDB), nil
}

func (r *Repository) GetByStatus(ctx context.Context, status entities.DeliveryStatusType) ([]entities.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE status = $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, status.String())
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository getbystatus error: %w", err)
	}
	defer rows.Close()

	return collectDeliveries(rows)
}

// GetStaleActive возвращает активные доставки, молчащие дольше cutoff.
// Для доставок без единой точки отсчет идет от created_at.
func (r *Repository) GetStaleActive(ctx context.Context, cutoff time.Time) ([]entities.Delivery, error) {
	query := `
		SELECT ` + deliveryColumns + `
		FROM deliveries
		WHERE status IN ('pending', 'in_transit')
		  AND COALESCE(last_location_update_at, created_at) < $1
		ORDER BY id`

	rows, err := r.querier.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository getstaleactive error: %w", err)
	}
	defer rows.Close()

	return collectDeliveries(rows)
}

func (r *Repository) Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	deliveryModifyDB := FromDomainModify(&deliveryModify)

	builder := qb.
		Update("deliveries")

	// опциональные поля
	if deliveryModifyDB.Status != nil {
		builder = builder.Set("status", deliveryModifyDB.Status)
	}
	if deliveryModifyDB.CurrentLat != nil {
		builder = builder.Set("current_lat", deliveryModifyDB.CurrentLat)
	}
	if deliveryModifyDB.CurrentLng != nil {
		builder = builder.Set("current_lng", deliveryModifyDB.CurrentLng)
	}
	if deliveryModifyDB.LastLocationUpdateAt != nil {
		builder = builder.Set("last_location_update_at", deliveryModifyDB.LastLocationUpdateAt)
	}
	if deliveryModifyDB.EstimatedArrivalAt != nil {
		builder = builder.Set("estimated_arrival_at", deliveryModifyDB.EstimatedArrivalAt)
	}
	if deliveryModifyDB.StartedAt != nil {
		builder = builder.Set("started_at", deliveryModifyDB.StartedAt)
	}
	if deliveryModifyDB.CompletedAt != nil {
		builder = builder.Set("completed_at", deliveryModifyDB.CompletedAt)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": deliveryModifyDB.ID}).
		Suffix("RETURNING " + deliveryColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	var deliveryDB DeliveryDB
	err = scanDelivery(r.querier.QueryRow(ctx, query, args...), &deliveryDB)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tracker.ErrDeliveryNotFound
		}

		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, tracker.ErrOrderAlreadyTracked
		}

		return nil, fmt.Errorf("unexpected delivery repository update error: %w", err)
	}

	return ToDomain(&deliveryDB), nil
}

func scanDelivery(row pgx.Row, deliveryDB *DeliveryDB) error {
	return row.Scan(
		&deliveryDB.ID,
		&deliveryDB.OrderID,
		&deliveryDB.Status,
		&deliveryDB.CurrentLat,
		&deliveryDB.CurrentLng,
		&deliveryDB.LastLocationUpdateAt,
		&deliveryDB.DestinationLat,
		&deliveryDB.DestinationLng,
		&deliveryDB.EstimatedArrivalAt,
		&deliveryDB.StartedAt,
		&deliveryDB.CompletedAt,
		&deliveryDB.CreatedAt,
		&deliveryDB.UpdatedAt,
	)
}

func collectDeliveries(rows pgx.Rows) ([]entities.Delivery, error) {
	deliveryModels := make([]DeliveryDB, 0, 8)
	for rows.Next() {
		var deliveryDB DeliveryDB
		err := scanDelivery(rows, &deliveryDB)
		if err != nil {
			return nil, fmt.Errorf("unexpected delivery repository scan error: %w", err)
		}
		deliveryModels = append(deliveryModels, deliveryDB)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected delivery repository rows error: %w", err)
	}

	return ToDomainList(deliveryModels), nil
}

package location

import (
	"context"
	"fmt"

	"tracking/internal/entities"
	"tracking/internal/repository"
	"tracking/internal/service/tracker"
)

const sampleColumns = `id, delivery_id, lat, lng, speed, heading, accuracy, battery_level,
		metadata, recorded_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, sampleModify entities.LocationSampleModify) (*entities.LocationSample, error) {
	query := `
		INSERT INTO location_samples (delivery_id, lat, lng, speed, heading, accuracy, battery_level, metadata, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + sampleColumns

	var sampleDB LocationSampleDB
	err := r.querier.QueryRow(
		ctx,
		query,
		sampleModify.DeliveryID,
		sampleModify.Lat,
		sampleModify.Lng,
		sampleModify.Speed,
		sampleModify.Heading,
		sampleModify.Accuracy,
		sampleModify.BatteryLevel,
		sampleModify.Metadata,
		sampleModify.RecordedAt,
	).Scan(
		&sampleDB.ID,
		&sampleDB.DeliveryID,
		&sampleDB.Lat,
		&sampleDB.Lng,
		&sampleDB.Speed,
		&sampleDB.Heading,
		&sampleDB.Accuracy,
		&sampleDB.BatteryLevel,
		&sampleDB.Metadata,
		&sampleDB.RecordedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation) {
			return nil, tracker.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("unexpected location repository create error: %w", err)
	}

	return ToDomain(&sampleDB), nil
}

// GetByDeliveryID отдает всю историю точек в порядке записи.
func (r *Repository) GetByDeliveryID(ctx context.Context, deliveryID int64) ([]entities.LocationSample, error) {
	query := `
		SELECT ` + sampleColumns + `
		FROM location_samples
		WHERE delivery_id = $1
		ORDER BY recorded_at, id`

	rows, err := r.querier.Query(ctx, query, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("unexpected location repository getbydeliveryid error: %w", err)
	}
	defer rows.Close()

	sampleModels := make([]LocationSampleDB, 0, 8)
	for rows.Next() {
		var sampleDB LocationSampleDB
		err := rows.Scan(
			&sampleDB.ID,
			&sampleDB.DeliveryID,
			&sampleDB.Lat,
			&sampleDB.Lng,
			&sampleDB.Speed,
			&sampleDB.Heading,
			&sampleDB.Accuracy,
			&sampleDB.BatteryLevel,
			&sampleDB.Metadata,
			&sampleDB.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected location repository scan error: %w", err)
		}
		sampleModels = append(sampleModels, sampleDB)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected location repository rows error: %w", err)
	}

	return ToDomainList(sampleModels), nil
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_history_get_test
package delivery_history_get

import (
	"context"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetLocationHistory(ctx context.Context, deliveryID int64) ([]entities.LocationSample, error)
}

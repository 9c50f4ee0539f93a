//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=deliveries_get_test
package deliveries_get

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
	GetDeliveriesByStatus(ctx context.Context, status entities.DeliveryStatusType) ([]entities.Delivery, error)
	GetDeliveryByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error)
}

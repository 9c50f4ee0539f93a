//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_start_post_test
package delivery_start_post

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
	Start(ctx context.Context, deliveryID int64) (*entities.Delivery, error)
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=simulator_test
package simulator

import (
	"context"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

type DeliveryTracker interface {
	GetDelivery(ctx context.Context, id int64) (*entities.Delivery, error)
	Start(ctx context.Context, deliveryID int64) (*entities.Delivery, error)
	Complete(ctx context.Context, deliveryID int64) (*entities.Delivery, error)
	UpdateLocation(ctx context.Context, sampleModify entities.LocationSampleModify) (*entities.Delivery, error)
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

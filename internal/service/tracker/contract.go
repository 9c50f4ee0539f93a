//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracker_test
package tracker

import (
	"context"
	"time"

	"tracking/internal/broker"
	"tracking/internal/entities"
	"tracking/pkg/logger"
)

type DeliveryRepository interface {
	Create(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error)
	GetByID(ctx context.Context, id int64) (*entities.Delivery, error)
	Update(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error)
	GetByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error)
	GetByStatus(ctx context.Context, status entities.DeliveryStatusType) ([]entities.Delivery, error)
	GetStaleActive(ctx context.Context, cutoff time.Time) ([]entities.Delivery, error)
}

type LocationRepository interface {
	Create(ctx context.Context, sampleModify entities.LocationSampleModify) (*entities.LocationSample, error)
	GetByDeliveryID(ctx context.Context, deliveryID int64) ([]entities.LocationSample, error)
}

type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType entities.EventType, payload interface{}, opts ...broker.PublishOption) (string, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

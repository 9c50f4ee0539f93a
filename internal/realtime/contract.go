//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=realtime_test
package realtime

import (
	"tracking/internal/broker"
	"tracking/internal/entities"
	"tracking/pkg/logger"
)

type EventSubscriber interface {
	Subscribe(eventType entities.EventType, handler broker.Handler) string
	Unsubscribe(subscriptionID string) bool
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

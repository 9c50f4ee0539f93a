//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_track_test
package delivery_track

import (
	"tracking/internal/realtime"
	"tracking/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Hub interface {
	NewClient() *realtime.Client
	Join(deliveryID int64, c *realtime.Client)
	Leave(deliveryID int64, c *realtime.Client)
	Disconnect(c *realtime.Client)
}

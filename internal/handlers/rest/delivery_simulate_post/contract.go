//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_simulate_post_test
package delivery_simulate_post

import (
	"context"

	"tracking/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Simulator interface {
	Run(ctx context.Context, deliveryID int64) error
}

package stale_sweep

import (
	"context"
	"time"

	"tracking/pkg/logger"
)

type Service interface {
	FailStale(ctx context.Context, timeout time.Duration) (int64, error)
}

// StaleSweep периодически переводит в failed активные доставки,
// от которых давно нет точек.
type StaleSweep struct {
	log      logger.Logger
	service  Service
	timeout  time.Duration
	interval time.Duration
}

func NewStaleSweep(log logger.Logger, service Service, timeout, interval time.Duration) *StaleSweep {
	return &StaleSweep{
		log:      log,
		service:  service,
		timeout:  timeout,
		interval: interval,
	}
}

func (s *StaleSweep) TTL() time.Duration {
	return s.interval
}

func (s *StaleSweep) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	failed, err := s.service.FailStale(ctxWithTimeout, s.timeout)

	if failed > 0 {
		s.log.With(
			logger.NewField("failed_deliveries", failed),
		).Info("stale sweep")
	}

	return err
}

func (s *StaleSweep) Info() string {
	return "stale sweep"
}

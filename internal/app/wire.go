//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"tracking/internal/broker"
	brokerInproc "tracking/internal/broker/inproc"
	brokerKafka "tracking/internal/broker/kafka"
	"tracking/internal/handlers/rest/deliveries_get"
	"tracking/internal/handlers/rest/delivery_cancel_post"
	"tracking/internal/handlers/rest/delivery_complete_post"
	"tracking/internal/handlers/rest/delivery_get"
	"tracking/internal/handlers/rest/delivery_history_get"
	"tracking/internal/handlers/rest/delivery_location_post"
	"tracking/internal/handlers/rest/delivery_post"
	"tracking/internal/handlers/rest/delivery_start_post"
	"tracking/internal/handlers/tasks/stale_sweep"
	"tracking/internal/pkg/config"
	"tracking/internal/realtime"

	deliveryRepo "tracking/internal/repository/delivery"
	locationRepo "tracking/internal/repository/location"
	orderRepo "tracking/internal/repository/order"
	"tracking/internal/service/simulator"
	"tracking/internal/service/tracker"

	"tracking/pkg/background"
	"tracking/pkg/logger"
	"tracking/pkg/querier"
	"tracking/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// eventSource подписывает события, опубликованные этим процессом.
const eventSource = "tracking-service"

type Application struct {
	ServiceTracker    ServiceTracker
	Simulator         *simulator.Simulator
	Hub               *realtime.Hub
	Broker            broker.Broker
	BackgroundWorkers *background.Worker
}

type ServiceTracker interface {
	delivery_post.Service
	delivery_get.Service
	deliveries_get.Service
	delivery_location_post.Service
	delivery_start_post.Service
	delivery_complete_post.Service
	delivery_cancel_post.Service
	delivery_history_get.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		provideDeliveryRepository,
		provideLocationRepository,
		provideOrderRepository,

		provideBroker,
		provideServiceTracker,
		provideSimulator,
		provideHub,

		provideStaleSweepTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceTracker), new(*tracker.Tracker)),
	)
	return &Application{}, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideLocationRepository(querier *querier.Querier) *locationRepo.Repository {
	return locationRepo.New(querier)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

// provideBroker выбирает шину событий по конфигу. Kafka-бэкенд поднимает
// продюсер и консьюмер-группу, inproc живет внутри процесса.
func provideBroker(ctx context.Context, log logger.Logger, cfg *config.Config) (broker.Broker, error) {
	if cfg.Broker.Backend == config.BrokerBackendKafka {
		return brokerKafka.New(ctx, log, &cfg.Broker.Kafka, eventSource)
	}
	return brokerInproc.New(log, eventSource), nil
}

func provideServiceTracker(
	log logger.Logger,
	deliveries *deliveryRepo.Repository,
	locations *locationRepo.Repository,
	orders *orderRepo.Repository,
	events broker.Broker,
	txManager *tx.Manager,
) *tracker.Tracker {
	return tracker.New(log, deliveries, locations, orders, events, txManager)
}

func provideSimulator(log logger.Logger, deliveryTracker *tracker.Tracker, cfg *config.Config) (*simulator.Simulator, error) {
	return simulator.New(log, deliveryTracker, simulator.Config{
		Waypoints:     cfg.Simulator.Waypoints,
		Interval:      cfg.Simulator.Interval,
		MinSpeedKmh:   cfg.Simulator.MinSpeedKmh,
		MaxSpeedKmh:   cfg.Simulator.MaxSpeedKmh,
		BaseLat:       cfg.Simulator.BaseLat,
		BaseLng:       cfg.Simulator.BaseLng,
		JitterDegrees: cfg.Simulator.JitterDegrees,
	}, nil)
}

func provideHub(log logger.Logger, events broker.Broker) *realtime.Hub {
	return realtime.New(log, events)
}

func provideStaleSweepTask(log logger.Logger, service *tracker.Tracker, cfg *config.Config) *stale_sweep.StaleSweep {
	return stale_sweep.NewStaleSweep(
		log,
		service,
		cfg.Tasks.StaleDeliveryTimeout,
		cfg.Tasks.StaleSweepInterval,
	)
}

func provideTaskList(
	staleSweepTask *stale_sweep.StaleSweep,
) []background.Task {
	return []background.Task{
		staleSweepTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracking/internal/entities"
	"tracking/pkg/geomath"
	"tracking/pkg/keymutex"
	"tracking/pkg/logger"
)

// Tracker ведет жизненный цикл доставок и поток их координат.
//
// Записи по одной доставке сериализуются через keymutex: конкурентные
// обновления одной доставки не могут откатить снапшот позиции к более
// старой точке. Разные доставки полностью независимы и параллельны.
type Tracker struct {
	log        handlerLogger
	deliveries DeliveryRepository
	locations  LocationRepository
	orders     OrderRepository
	events     EventPublisher
	txManager  TxManager

	deliveryLocks *keymutex.KeyMutex[int64]
}

func New(
	log handlerLogger,
	deliveries DeliveryRepository,
	locations LocationRepository,
	orders OrderRepository,
	events EventPublisher,
	txManager TxManager,
) *Tracker {
	return &Tracker{
		log:           log,
		deliveries:    deliveries,
		locations:     locations,
		orders:        orders,
		events:        events,
		txManager:     txManager,
		deliveryLocks: keymutex.New[int64](),
	}
}

// CreateDelivery создает доставку в статусе pending для существующего заказа.
// Destination опционален, но либо обе координаты, либо ни одной.
func (t *Tracker) CreateDelivery(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error) {
	if deliveryModify.OrderID == nil {
		return nil, ErrMissingRequiredFields
	}
	if !isValidOrderID(*deliveryModify.OrderID) {
		return nil, ErrInvalidOrderID
	}

	hasLat := deliveryModify.DestinationLat != nil
	hasLng := deliveryModify.DestinationLng != nil
	if hasLat != hasLng {
		return nil, ErrMissingRequiredFields
	}
	if hasLat && !isValidCoordinates(*deliveryModify.DestinationLat, *deliveryModify.DestinationLng) {
		return nil, ErrInvalidCoordinates
	}

	_, err := t.orders.GetByID(ctx, *deliveryModify.OrderID)
	if err != nil {
		return nil, fmt.Errorf("validate order: %w", err)
	}

	status := entities.DeliveryPending
	delivery, err := t.deliveries.Create(ctx, entities.DeliveryModify{
		OrderID:        deliveryModify.OrderID,
		Status:         &status,
		DestinationLat: deliveryModify.DestinationLat,
		DestinationLng: deliveryModify.DestinationLng,
	})
	if err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	t.publish(ctx, entities.EventDeliveryCreated, entities.NewDeliveryPayload(delivery))

	return delivery, nil
}

func (t *Tracker) GetDelivery(ctx context.Context, id int64) (*entities.Delivery, error) {
	delivery, err := t.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return delivery, nil
}

func (t *Tracker) GetDeliveryByOrderID(ctx context.Context, orderID string) (*entities.Delivery, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	delivery, err := t.deliveries.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get delivery by order: %w", err)
	}
	return delivery, nil
}

func (t *Tracker) GetDeliveriesByStatus(ctx context.Context, status entities.DeliveryStatusType) ([]entities.Delivery, error) {
	if !isValidStatus(status.String()) {
		return nil, ErrInvalidStatus
	}

	deliveries, err := t.deliveries.GetByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("get deliveries by status: %w", err)
	}
	return deliveries, nil
}

func (t *Tracker) GetLocationHistory(ctx context.Context, deliveryID int64) ([]entities.LocationSample, error) {
	_, err := t.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	samples, err := t.locations.GetByDeliveryID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get location history: %w", err)
	}
	return samples, nil
}

// UpdateLocation принимает очередную координату доставки: дописывает историю,
// перезаписывает снапшот позиции и пересчитывает ETA (если задан пункт
// назначения), после чего публикует DELIVERY_LOCATION_UPDATED.
//
// Запись истории и обновление снапшота - два отдельных запроса без общей
// транзакции: при падении процесса между ними снапшот отстанет от истории на
// одну точку и будет догнан следующим успешным обновлением.
func (t *Tracker) UpdateLocation(ctx context.Context, sampleModify entities.LocationSampleModify) (*entities.Delivery, error) {
	if sampleModify.DeliveryID == nil || sampleModify.Lat == nil || sampleModify.Lng == nil {
		return nil, ErrMissingRequiredFields
	}
	if !isValidCoordinates(*sampleModify.Lat, *sampleModify.Lng) {
		return nil, ErrInvalidCoordinates
	}
	if sampleModify.Speed != nil && *sampleModify.Speed < 0 {
		return nil, ErrInvalidSpeed
	}

	deliveryID := *sampleModify.DeliveryID

	t.deliveryLocks.Lock(deliveryID)
	defer t.deliveryLocks.Unlock(deliveryID)

	delivery, err := t.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if delivery.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s", ErrDeliveryInactive, delivery.Status)
	}

	now := time.Now().UTC()
	if sampleModify.RecordedAt == nil {
		sampleModify.RecordedAt = &now
	}

	_, err = t.locations.Create(ctx, sampleModify)
	if err != nil {
		return nil, fmt.Errorf("append location sample: %w", err)
	}

	deliveryModify := entities.DeliveryModify{
		ID:                   &delivery.ID,
		CurrentLat:           sampleModify.Lat,
		CurrentLng:           sampleModify.Lng,
		LastLocationUpdateAt: sampleModify.RecordedAt,
	}

	if delivery.DestinationLat != nil && delivery.DestinationLng != nil {
		distanceKm := geomath.DistanceKm(
			*sampleModify.Lat, *sampleModify.Lng,
			*delivery.DestinationLat, *delivery.DestinationLng,
		)

		speed := 0.0
		if sampleModify.Speed != nil {
			speed = *sampleModify.Speed
		}

		eta := geomath.ETAFromSpeed(distanceKm, speed, *sampleModify.RecordedAt)
		deliveryModify.EstimatedArrivalAt = &eta
	}

	updated, err := t.deliveries.Update(ctx, deliveryModify)
	if err != nil {
		return nil, fmt.Errorf("update position snapshot: %w", err)
	}

	t.publish(ctx, entities.EventDeliveryLocationUpdated, entities.LocationUpdatedPayload{
		DeliveryID: delivery.ID,
		Lat:        *sampleModify.Lat,
		Lng:        *sampleModify.Lng,
		Speed:      sampleModify.Speed,
		Timestamp:  *sampleModify.RecordedAt,
	})

	return updated, nil
}

// Start переводит pending -> in_transit.
func (t *Tracker) Start(ctx context.Context, deliveryID int64) (*entities.Delivery, error) {
	now := time.Now().UTC()
	status := entities.DeliveryInTransit

	updated, err := t.transition(ctx, deliveryID, entities.DeliveryModify{
		Status:    &status,
		StartedAt: &now,
	}, entities.DeliveryPending)
	if err != nil {
		return nil, err
	}

	t.publish(ctx, entities.EventDeliveryUpdated, entities.NewDeliveryPayload(updated))
	return updated, nil
}

// Complete переводит in_transit -> delivered.
func (t *Tracker) Complete(ctx context.Context, deliveryID int64) (*entities.Delivery, error) {
	now := time.Now().UTC()
	status := entities.DeliveryDelivered

	updated, err := t.transition(ctx, deliveryID, entities.DeliveryModify{
		Status:      &status,
		CompletedAt: &now,
	}, entities.DeliveryInTransit)
	if err != nil {
		return nil, err
	}

	t.publish(ctx, entities.EventDeliveryCompleted, entities.NewDeliveryPayload(updated))
	return updated, nil
}

// Cancel переводит pending|in_transit -> cancelled.
func (t *Tracker) Cancel(ctx context.Context, deliveryID int64) (*entities.Delivery, error) {
	status := entities.DeliveryCancelled

	updated, err := t.transition(ctx, deliveryID, entities.DeliveryModify{
		Status: &status,
	}, entities.DeliveryPending, entities.DeliveryInTransit)
	if err != nil {
		return nil, err
	}

	t.publish(ctx, entities.EventDeliveryUpdated, entities.NewDeliveryPayload(updated))
	return updated, nil
}

// Fail переводит любой нетерминальный статус в failed.
func (t *Tracker) Fail(ctx context.Context, deliveryID int64) (*entities.Delivery, error) {
	status := entities.DeliveryFailed

	updated, err := t.transition(ctx, deliveryID, entities.DeliveryModify{
		Status: &status,
	}, entities.DeliveryPending, entities.DeliveryInTransit)
	if err != nil {
		return nil, err
	}

	t.publish(ctx, entities.EventDeliveryUpdated, entities.NewDeliveryPayload(updated))
	return updated, nil
}

// FailStale помечает failed активные доставки без координат дольше timeout.
// Возвращает число затронутых доставок.
func (t *Tracker) FailStale(ctx context.Context, timeout time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-timeout)

	stale, err := t.deliveries.GetStaleActive(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("get stale deliveries: %w", err)
	}

	var failed int64
	for i := range stale {
		_, err := t.Fail(ctx, stale[i].ID)
		if err != nil {
			// гонка с конкурентным завершением - не ошибка свипа
			if errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrDeliveryNotFound) {
				continue
			}
			return failed, fmt.Errorf("fail stale delivery %d: %w", stale[i].ID, err)
		}
		failed++
	}

	return failed, nil
}

// transition атомарно (check-and-set в транзакции, плюс сериализация
// per-delivery) применяет переход статуса, разрешенный только из allowedFrom.
func (t *Tracker) transition(
	ctx context.Context,
	deliveryID int64,
	deliveryModify entities.DeliveryModify,
	allowedFrom ...entities.DeliveryStatusType,
) (*entities.Delivery, error) {
	t.deliveryLocks.Lock(deliveryID)
	defer t.deliveryLocks.Unlock(deliveryID)

	var updated *entities.Delivery
	err := t.txManager.Do(ctx, func(ctx context.Context) error {
		delivery, err := t.deliveries.GetByID(ctx, deliveryID)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}

		allowed := false
		for _, from := range allowedFrom {
			if delivery.Status == from {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, delivery.Status, *deliveryModify.Status)
		}

		deliveryModify.ID = &delivery.ID
		updated, err = t.deliveries.Update(ctx, deliveryModify)
		if err != nil {
			return fmt.Errorf("update delivery status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// publish отправляет событие best effort: трекер уже изменил состояние, и
// ошибка рассылки не должна превращать успешную операцию в неуспешную.
func (t *Tracker) publish(ctx context.Context, eventType entities.EventType, payload interface{}) {
	_, err := t.events.Publish(ctx, eventType, payload)
	if err != nil {
		t.log.Error("publish event",
			logger.NewField("event_type", eventType.String()),
			logger.NewField("error", err),
		)
	}
}

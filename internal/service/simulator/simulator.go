package simulator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"tracking/internal/entities"
	"tracking/internal/service/tracker"
	"tracking/pkg/geomath"
	"tracking/pkg/logger"
)

// Config параметры синтетического маршрута.
type Config struct {
	// Waypoints число отрезков маршрута: точек будет Waypoints+1,
	// включая стартовую и конечную.
	Waypoints int
	// Interval пауза между точками.
	Interval time.Duration
	// MinSpeedKmh и MaxSpeedKmh границы псевдослучайной скорости.
	MinSpeedKmh float64
	MaxSpeedKmh float64
	// BaseLat и BaseLng подставляются вместо отсутствующих координат
	// старта или назначения.
	BaseLat float64
	BaseLng float64
	// JitterDegrees амплитуда шума промежуточных точек в градусах.
	JitterDegrees float64
}

func (c Config) validate() error {
	if c.Waypoints < 1 {
		return fmt.Errorf("%w: waypoints must be >= 1", ErrInvalidConfig)
	}
	if c.Interval < 0 {
		return fmt.Errorf("%w: interval must be >= 0", ErrInvalidConfig)
	}
	if c.MinSpeedKmh <= 0 || c.MaxSpeedKmh < c.MinSpeedKmh {
		return fmt.Errorf("%w: speed bounds must satisfy 0 < min <= max", ErrInvalidConfig)
	}
	if c.JitterDegrees < 0 {
		return fmt.Errorf("%w: jitter must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// Simulator гоняет доставку по синтетическому маршруту через тот же
// трекер, что и реальный поток координат. Демо и интеграционная обвязка,
// а не боевой путь ингеста.
type Simulator struct {
	log     handlerLogger
	tracker DeliveryTracker
	cfg     Config

	// rand.Rand не потокобезопасен, а Run может идти параллельно
	// для разных доставок.
	rndMu sync.Mutex
	rnd   *rand.Rand
}

// New собирает симулятор. Нулевой rnd заменяется источником со случайным
// сидом; фиксированный сид дает воспроизводимый маршрут.
func New(log handlerLogger, deliveryTracker DeliveryTracker, cfg Config, rnd *rand.Rand) (*Simulator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Simulator{
		log:     log,
		tracker: deliveryTracker,
		cfg:     cfg,
		rnd:     rnd,
	}, nil
}

type waypoint struct {
	lat float64
	lng float64
}

// Run прогоняет доставку по маршруту от текущей позиции до пункта назначения
// и завершает ее. Доставка в pending автоматически стартует; любой статус,
// кроме pending и in_transit, отвергается.
//
// Остановка кооперативная: отмена ctx или отмена самой доставки посреди
// прогона обрывают оставшиеся точки без ошибки. Любая другая ошибка трекера
// прерывает прогон и возвращается как есть.
func (s *Simulator) Run(ctx context.Context, deliveryID int64) error {
	delivery, err := s.tracker.GetDelivery(ctx, deliveryID)
	if err != nil {
		return fmt.Errorf("get delivery: %w", err)
	}

	switch delivery.Status {
	case entities.DeliveryPending:
		delivery, err = s.tracker.Start(ctx, deliveryID)
		if err != nil {
			return fmt.Errorf("start delivery: %w", err)
		}
	case entities.DeliveryInTransit:
	default:
		return fmt.Errorf("%w: %s", ErrDeliveryNotRunnable, delivery.Status)
	}

	route := s.route(delivery)

	s.log.Info("simulation started",
		logger.NewField("delivery_id", deliveryID),
		logger.NewField("waypoints", len(route)),
	)

	prev := route[0]
	for i, point := range route {
		speed := s.randomSpeed()

		heading := 0.0
		if i > 0 {
			heading = geomath.BearingDegrees(prev.lat, prev.lng, point.lat, point.lng)
		}

		_, err := s.tracker.UpdateLocation(ctx, entities.LocationSampleModify{
			DeliveryID: &deliveryID,
			Lat:        &point.lat,
			Lng:        &point.lng,
			Speed:      &speed,
			Heading:    &heading,
		})
		if err != nil {
			// доставку отменили посреди прогона - штатная остановка
			if errors.Is(err, tracker.ErrDeliveryInactive) {
				s.log.Info("simulation stopped: delivery no longer active",
					logger.NewField("delivery_id", deliveryID),
					logger.NewField("waypoint", i),
				)
				return nil
			}
			return fmt.Errorf("update location at waypoint %d: %w", i, err)
		}

		prev = point

		if i == len(route)-1 {
			break
		}

		select {
		case <-ctx.Done():
			s.log.Info("simulation stopped: context cancelled",
				logger.NewField("delivery_id", deliveryID),
				logger.NewField("waypoint", i),
			)
			return nil
		case <-time.After(s.cfg.Interval):
		}
	}

	if _, err := s.tracker.Complete(ctx, deliveryID); err != nil {
		if errors.Is(err, tracker.ErrInvalidTransition) {
			s.log.Info("simulation stopped: delivery no longer active",
				logger.NewField("delivery_id", deliveryID),
			)
			return nil
		}
		return fmt.Errorf("complete delivery: %w", err)
	}

	s.log.Info("simulation finished",
		logger.NewField("delivery_id", deliveryID),
	)

	return nil
}

// route строит Waypoints+1 точек линейной интерполяцией от старта к
// назначению. Промежуточные точки получают небольшой шум, чтобы трек не был
// идеальной прямой; крайние точки не шумят.
func (s *Simulator) route(delivery *entities.Delivery) []waypoint {
	start := waypoint{lat: s.cfg.BaseLat, lng: s.cfg.BaseLng}
	if delivery.CurrentLat != nil && delivery.CurrentLng != nil {
		start = waypoint{lat: *delivery.CurrentLat, lng: *delivery.CurrentLng}
	}

	end := waypoint{lat: s.cfg.BaseLat, lng: s.cfg.BaseLng}
	if delivery.DestinationLat != nil && delivery.DestinationLng != nil {
		end = waypoint{lat: *delivery.DestinationLat, lng: *delivery.DestinationLng}
	}

	n := s.cfg.Waypoints
	route := make([]waypoint, 0, n+1)

	for i := 0; i <= n; i++ {
		fraction := float64(i) / float64(n)
		point := waypoint{
			lat: start.lat + (end.lat-start.lat)*fraction,
			lng: start.lng + (end.lng-start.lng)*fraction,
		}

		if i > 0 && i < n {
			point.lat += s.randomJitter()
			point.lng += s.randomJitter()
		}

		route = append(route, point)
	}

	return route
}

func (s *Simulator) randomSpeed() float64 {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.cfg.MinSpeedKmh + s.rnd.Float64()*(s.cfg.MaxSpeedKmh-s.cfg.MinSpeedKmh)
}

func (s *Simulator) randomJitter() float64 {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return (s.rnd.Float64()*2 - 1) * s.cfg.JitterDegrees
}

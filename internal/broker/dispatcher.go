package broker

import (
	"context"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"tracking/internal/entities"
	"tracking/pkg/logger"
)

// Dispatcher локальная рассылка событий по подпискам. Используется обоими
// бэкендами брокера: inproc кладет события напрямую, kafka - после чтения из
// топика.
//
// Гарантии:
//   - события одного типа доставляются каждому подписчику в порядке
//     постановки (у каждой подписки своя FIFO-очередь и один горутин-воркер);
//   - постановка в очередь не блокируется медленным обработчиком;
//   - паника или ошибка обработчика логируется и не трогает ни публикатора,
//     ни соседние подписки.
type Dispatcher struct {
	log handlerLogger

	mu     sync.RWMutex
	closed bool
	subs   map[entities.EventType]map[string]*subscription
	byID   map[string]*subscription

	wg sync.WaitGroup
}

type subscription struct {
	id        string
	eventType entities.EventType
	handler   Handler

	mu       sync.Mutex
	cond     *sync.Cond
	queue    []entities.Event
	stopped  bool // Unsubscribe: выходим сразу, хвост очереди отбрасывается
	draining bool // Close: дорабатываем очередь и выходим
}

func NewDispatcher(log handlerLogger) *Dispatcher {
	return &Dispatcher{
		log:  log,
		subs: make(map[entities.EventType]map[string]*subscription),
		byID: make(map[string]*subscription),
	}
}

func (d *Dispatcher) Subscribe(eventType entities.EventType, handler Handler) string {
	sub := &subscription{
		id:        uuid.NewString(),
		eventType: eventType,
		handler:   handler,
	}
	sub.cond = sync.NewCond(&sub.mu)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return sub.id
	}

	byType, ok := d.subs[eventType]
	if !ok {
		byType = make(map[string]*subscription)
		d.subs[eventType] = byType
	}
	byType[sub.id] = sub
	d.byID[sub.id] = sub

	d.wg.Add(1)
	go d.runSubscription(sub)

	return sub.id
}

func (d *Dispatcher) Unsubscribe(subscriptionID string) bool {
	d.mu.Lock()
	sub, ok := d.byID[subscriptionID]
	if ok {
		delete(d.byID, subscriptionID)
		delete(d.subs[sub.eventType], subscriptionID)
	}
	d.mu.Unlock()

	if !ok {
		return false
	}

	sub.mu.Lock()
	sub.stopped = true
	sub.queue = nil
	sub.cond.Signal()
	sub.mu.Unlock()

	return true
}

// Dispatch раскладывает событие по очередям текущих подписчиков его типа.
// Без подписчиков - no-op.
func (d *Dispatcher) Dispatch(event entities.Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}

	for _, sub := range d.subs[event.Type] {
		sub.enqueue(event)
	}
	return nil
}

// Close запрещает дальнейшую рассылку и дожидается доставки уже поставленных
// в очередь событий.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true

	for _, sub := range d.byID {
		sub.mu.Lock()
		sub.draining = true
		sub.cond.Signal()
		sub.mu.Unlock()
	}
	d.mu.Unlock()

	d.wg.Wait()
	return nil
}

func (d *Dispatcher) runSubscription(sub *subscription) {
	defer d.wg.Done()

	for {
		sub.mu.Lock()
		for len(sub.queue) == 0 && !sub.stopped && !sub.draining {
			sub.cond.Wait()
		}
		if sub.stopped || (sub.draining && len(sub.queue) == 0) {
			sub.mu.Unlock()
			return
		}
		event := sub.queue[0]
		sub.queue = sub.queue[1:]
		sub.mu.Unlock()

		d.invokeSafely(sub, event)
	}
}

// invokeSafely вызывает обработчик, изолируя панику и ошибку.
func (d *Dispatcher) invokeSafely(sub *subscription, event entities.Event) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			d.log.Error("event handler panic",
				logger.NewField("subscription", sub.id),
				logger.NewField("event_type", event.Type.String()),
				logger.NewField("event_id", event.ID),
				logger.NewField("recover", r),
				logger.NewField("stack", stack),
			)
		}
	}()

	// Контекст обработчика не связан с контекстом публикатора: доставка
	// пережила Publish и не должна отменяться вместе с его запросом.
	if err := sub.handler(context.Background(), event); err != nil {
		d.log.Error("event handler failed",
			logger.NewField("subscription", sub.id),
			logger.NewField("event_type", event.Type.String()),
			logger.NewField("event_id", event.ID),
			logger.NewField("error", err),
		)
	}
}

func (s *subscription) enqueue(event entities.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.draining {
		return
	}
	s.queue = append(s.queue, event)
	s.cond.Signal()
}

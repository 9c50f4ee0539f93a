package broker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"tracking/internal/entities"
	"tracking/pkg/logger"
)

// Handler обрабатывает одно событие. Ошибка обработчика изолируется брокером:
// логируется и не влияет ни на публикатора, ни на другие подписки.
type Handler func(ctx context.Context, event entities.Event) error

// Broker публикация/подписка на события доставки. Две реализации за одним
// контрактом: внутрипроцессная (inproc) и распределенная (kafka). Выбор
// реализации - конфигурация процесса, для публикаторов и подписчиков разницы
// нет.
type Broker interface {
	// Publish присваивает событию свежий id, таймстемп и correlation id
	// (если не переопределен опциями) и инициирует рассылку. Возвращается
	// сразу после постановки в очереди подписчиков, не дожидаясь
	// обработчиков.
	Publish(ctx context.Context, eventType entities.EventType, payload interface{}, opts ...PublishOption) (string, error)

	// Subscribe регистрирует обработчик для всех последующих событий типа.
	Subscribe(eventType entities.EventType, handler Handler) string

	// Unsubscribe снимает регистрацию; false если подписки не было.
	Unsubscribe(subscriptionID string) bool

	// Close останавливает рассылку, дождавшись уже поставленных в очередь
	// событий.
	Close() error
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type PublishOption func(*entities.EventMetadata)

func WithCorrelationID(correlationID string) PublishOption {
	return func(m *entities.EventMetadata) {
		m.CorrelationID = correlationID
	}
}

func WithSource(source string) PublishOption {
	return func(m *entities.EventMetadata) {
		m.Source = source
	}
}

// NewEvent собирает событие c заполненными метаданными.
func NewEvent(eventType entities.EventType, payload interface{}, defaultSource string, opts ...PublishOption) entities.Event {
	metadata := entities.EventMetadata{
		Timestamp:     time.Now().UTC(),
		Source:        defaultSource,
		CorrelationID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(&metadata)
	}

	return entities.Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		Payload:  payload,
		Metadata: metadata,
	}
}

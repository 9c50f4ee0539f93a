package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"tracking/internal/broker"
	"tracking/internal/entities"
	"tracking/internal/pkg/config"
	kafkapkg "tracking/internal/pkg/kafka"
	"tracking/pkg/logger"
)

// Broker распределенный бэкенд: Publish сериализует событие в JSON и
// отправляет в топик, каждый процесс-подписчик читает топик своей consumer
// group и раздает события локальным обработчикам через Dispatcher.
//
// Group ID дополняется уникальным суффиксом процесса: каждый инстанс сервиса
// должен получить каждое событие (broadcast, а не шардирование).
type Broker struct {
	log        logger.Logger
	source     string
	topic      string
	producer   sarama.SyncProducer
	consumer   *kafkapkg.Consumer
	dispatcher *broker.Dispatcher

	cancelConsume context.CancelFunc
	consumeDone   chan struct{}
}

func New(ctx context.Context, log logger.Logger, cfg *config.Kafka, source string) (*Broker, error) {
	brokers := strings.Split(cfg.Brokers, ",")

	dispatcher := broker.NewDispatcher(log)

	producer, err := kafkapkg.NewSyncProducer(ctx, log, cfg, brokers)
	if err != nil {
		return nil, fmt.Errorf("producer: %w", err)
	}

	groupID := fmt.Sprintf("%s-%s", cfg.ConsumerGroup, uuid.NewString()[:8])
	handler := newConsumerHandler(log, dispatcher)

	consumer, err := kafkapkg.NewConsumer(ctx, log, cfg, brokers, groupID, []string{cfg.Topic}, handler)
	if err != nil {
		closeErr := producer.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("consumer: %w (failed to close producer: %w)", err, closeErr)
		}
		return nil, fmt.Errorf("consumer: %w", err)
	}

	consumeCtx, cancelConsume := context.WithCancel(context.Background())

	b := &Broker{
		log:           log.With(logger.NewField("broker_group", groupID)),
		source:        source,
		topic:         cfg.Topic,
		producer:      producer,
		consumer:      consumer,
		dispatcher:    dispatcher,
		cancelConsume: cancelConsume,
		consumeDone:   make(chan struct{}),
	}

	go func() {
		defer close(b.consumeDone)
		err := b.consumer.Start(consumeCtx)
		if err != nil && !errors.Is(err, context.Canceled) {
			b.log.Error("kafka broker consume loop stopped",
				logger.NewField("error", err),
			)
		}
	}()

	return b, nil
}

// Publish отправляет событие в топик. Локальные подписчики получат его тем же
// путем, что и удаленные - через consume-цикл; двойной доставки нет, так как
// напрямую в Dispatcher публикация не кладется.
func (b *Broker) Publish(_ context.Context, eventType entities.EventType, payload interface{}, opts ...broker.PublishOption) (string, error) {
	event := broker.NewEvent(eventType, payload, b.source, opts...)

	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("%w: %w", broker.ErrMarshalPayload, err)
	}

	// Ключ - тип события: события одного типа попадают в одну партицию и
	// сохраняют порядок публикации.
	message := &sarama.ProducerMessage{
		Topic: b.topic,
		Key:   sarama.StringEncoder(event.Type.String()),
		Value: sarama.ByteEncoder(data),
	}

	_, _, err = b.producer.SendMessage(message)
	if err != nil {
		return "", fmt.Errorf("send event: %w", err)
	}

	return event.ID, nil
}

func (b *Broker) Subscribe(eventType entities.EventType, handler broker.Handler) string {
	return b.dispatcher.Subscribe(eventType, handler)
}

func (b *Broker) Unsubscribe(subscriptionID string) bool {
	return b.dispatcher.Unsubscribe(subscriptionID)
}

func (b *Broker) Close() error {
	b.cancelConsume()
	<-b.consumeDone

	var errs []error
	if err := b.consumer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("consumer: %w", err))
	}
	if err := b.producer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("producer: %w", err))
	}
	if err := b.dispatcher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("dispatcher: %w", err))
	}

	return errors.Join(errs...)
}

package inproc

import (
	"context"

	"tracking/internal/broker"
	"tracking/internal/entities"
	"tracking/pkg/logger"
)

// Broker внутрипроцессный бэкенд: рассылка подписчикам того же процесса.
type Broker struct {
	source     string
	dispatcher *broker.Dispatcher
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

func New(log handlerLogger, source string) *Broker {
	return &Broker{
		source:     source,
		dispatcher: broker.NewDispatcher(log),
	}
}

func (b *Broker) Publish(_ context.Context, eventType entities.EventType, payload interface{}, opts ...broker.PublishOption) (string, error) {
	event := broker.NewEvent(eventType, payload, b.source, opts...)

	if err := b.dispatcher.Dispatch(event); err != nil {
		return "", err
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
	return b.dispatcher.Close()
}

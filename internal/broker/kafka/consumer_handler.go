package kafka

import (
	"encoding/json"

	"github.com/IBM/sarama"
	"tracking/internal/broker"
	"tracking/internal/entities"
	"tracking/pkg/logger"
)

// consumerHandler читает события из топика и раздает их локальному
// диспетчеру.
type consumerHandler struct {
	log        logger.Logger
	dispatcher *broker.Dispatcher
}

func newConsumerHandler(log logger.Logger, dispatcher *broker.Dispatcher) *consumerHandler {
	return &consumerHandler{
		log:        log,
		dispatcher: dispatcher,
	}
}

func (h *consumerHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("event claim closed, exiting ConsumeClaim")
				return nil
			}

			h.processMessage(sess, message)

		case <-sess.Context().Done():
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

func (h *consumerHandler) processMessage(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	var event entities.Event
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("event consumer received bad message")
		sess.MarkMessage(message, "")
		return
	}

	err = h.dispatcher.Dispatch(event)
	if err != nil {
		// брокер закрывается; сообщение не помечаем, дочитает следующий
		// инстанс группы
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("event_id", event.ID),
		).Warn("dispatch after close, message left unmarked")
		return
	}

	sess.MarkMessage(message, "")
}

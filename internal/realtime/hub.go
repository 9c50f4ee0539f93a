package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"tracking/internal/entities"
	"tracking/pkg/logger"
)

// Hub раскладывает события брокера по комнатам доставок. Клиент входит в
// комнату через Join и с этого момента получает события только этой доставки;
// прошлые события не реплеятся.
type Hub struct {
	log        handlerLogger
	subscriber EventSubscriber

	subscriptionIDs []string

	mu          sync.RWMutex
	rooms       map[int64]map[*Client]struct{}
	memberships map[*Client]map[int64]struct{}
}

// New создает хаб и подписывает его на события позиций и статусов.
func New(log handlerLogger, subscriber EventSubscriber) *Hub {
	h := &Hub{
		log:         log,
		subscriber:  subscriber,
		rooms:       make(map[int64]map[*Client]struct{}),
		memberships: make(map[*Client]map[int64]struct{}),
	}

	h.subscriptionIDs = []string{
		subscriber.Subscribe(entities.EventDeliveryLocationUpdated, h.handleEvent(MessageLocationUpdate)),
		subscriber.Subscribe(entities.EventDeliveryUpdated, h.handleEvent(MessageStatusUpdate)),
		subscriber.Subscribe(entities.EventDeliveryCompleted, h.handleEvent(MessageStatusUpdate)),
	}

	return h
}

// NewClient регистрирует новое подключение. Комнат у него пока нет.
func (h *Hub) NewClient() *Client {
	c := newClient()

	h.mu.Lock()
	h.memberships[c] = make(map[int64]struct{})
	h.mu.Unlock()

	return c
}

// Join вводит клиента в комнату доставки.
func (h *Hub) Join(deliveryID int64, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.memberships[c]; !ok {
		// клиент уже отключен
		return
	}

	room, ok := h.rooms[deliveryID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[deliveryID] = room
	}

	room[c] = struct{}{}
	h.memberships[c][deliveryID] = struct{}{}
}

// Leave выводит клиента из комнаты доставки. Выход из комнаты, в которой
// клиента нет, безобиден.
func (h *Hub) Leave(deliveryID int64, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveLocked(deliveryID, c)
}

func (h *Hub) leaveLocked(deliveryID int64, c *Client) {
	if room, ok := h.rooms[deliveryID]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, deliveryID)
		}
	}

	if joined, ok := h.memberships[c]; ok {
		delete(joined, deliveryID)
	}
}

// Disconnect выводит клиента из всех комнат и закрывает его канал.
func (h *Hub) Disconnect(c *Client) {
	h.mu.Lock()
	for deliveryID := range h.memberships[c] {
		h.leaveLocked(deliveryID, c)
	}
	delete(h.memberships, c)
	h.mu.Unlock()

	c.close()
}

// Close снимает подписки брокера и отключает всех клиентов.
func (h *Hub) Close() error {
	for _, id := range h.subscriptionIDs {
		h.subscriber.Unsubscribe(id)
	}

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.memberships))
	for c := range h.memberships {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.Disconnect(c)
	}

	return nil
}

func (h *Hub) handleEvent(kind string) func(ctx context.Context, event entities.Event) error {
	return func(_ context.Context, event entities.Event) error {
		deliveryID, data, err := deliveryPayload(event.Payload)
		if err != nil {
			return fmt.Errorf("decode %s payload: %w", event.Type, err)
		}

		h.deliver(deliveryID, Message{Event: kind, Data: data})
		return nil
	}
}

// deliver рассылает сообщение в комнату доставки. Клиент с переполненной
// очередью отключается: висеть на нем нельзя, а молча терять его сообщения
// дальше - хуже, чем разорвать соединение явно.
func (h *Hub) deliver(deliveryID int64, msg Message) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[deliveryID]))
	for c := range h.rooms[deliveryID] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if !c.push(msg) {
			h.log.Warn("dropping slow realtime client",
				logger.NewField("delivery_id", deliveryID),
			)
			h.Disconnect(c)
		}
	}
}

// deliveryPayload достает deliveryId из полезной нагрузки события через
// JSON-представление: нагрузка бывает и доменной структурой (inproc брокер),
// и map[string]interface{} (после десериализации из Kafka).
func deliveryPayload(payload interface{}) (int64, json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal payload: %w", err)
	}

	var probe struct {
		DeliveryID int64 `json:"deliveryId"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	if probe.DeliveryID == 0 {
		return 0, nil, errors.New("payload carries no deliveryId")
	}

	return probe.DeliveryID, raw, nil
}

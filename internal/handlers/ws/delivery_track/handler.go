package delivery_track

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"tracking/internal/realtime"
	"tracking/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

const (
	actionJoin  = "join"
	actionLeave = "leave"
)

type clientCommand struct {
	Action     string `json:"action"`
	DeliveryID int64  `json:"deliveryId"`
}

type Handler struct {
	log      handlerLogger
	hub      Hub
	upgrader websocket.Upgrader
}

func New(log handlerLogger, hub Hub) *Handler {
	handlerLog := log.With()

	return &Handler{
		log: handlerLog,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP апгрейдит соединение и держит его до разрыва. Клиент управляет
// подписками командами {"action":"join"|"leave","deliveryId":N}; события
// комнат уходят в сокет через write pump. Разрыв соединения снимает клиента
// со всех комнат.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Warn("websocket upgrade failed")
		return
	}

	client := h.hub.NewClient()

	go h.writePump(conn, client)
	h.readPump(conn, client)
}

func (h *Handler) readPump(conn *websocket.Conn, client *realtime.Client) {
	defer func() {
		h.hub.Disconnect(client)
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			h.log.With(
				logger.NewField("error", err),
			).Warn("malformed websocket command")
			continue
		}

		if cmd.DeliveryID <= 0 {
			h.log.Warn("websocket command without deliveryId")
			continue
		}

		switch cmd.Action {
		case actionJoin:
			h.hub.Join(cmd.DeliveryID, client)
		case actionLeave:
			h.hub.Leave(cmd.DeliveryID, client)
		default:
			h.log.With(
				logger.NewField("action", cmd.Action),
			).Warn("unknown websocket action")
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, client *realtime.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Receive():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл клиента, прощаемся штатно.
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

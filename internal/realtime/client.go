package realtime

import (
	"encoding/json"
	"sync"
)

// Message пуш подписчику комнаты: вид события плюс полезная нагрузка
// брокерского события без изменений.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	MessageLocationUpdate = "location-update"
	MessageStatusUpdate   = "status-update"
)

// clientBufferSize глубина исходящей очереди клиента. Переполнение означает,
// что клиент безнадежно отстал, и хаб его отключает.
const clientBufferSize = 32

// Client исходящий канал одного подключения. Создается хабом, живет до
// Disconnect. Медленный клиент не тормозит рассылку: отправка неблокирующая.
type Client struct {
	send chan Message

	mu     sync.Mutex
	closed bool
}

func newClient() *Client {
	return &Client{
		send: make(chan Message, clientBufferSize),
	}
}

// Receive канал входящих пушей. Закрывается при отключении клиента.
func (c *Client) Receive() <-chan Message {
	return c.send
}

// push кладет сообщение в очередь клиента, не блокируясь.
// false означает переполнение очереди.
func (c *Client) push(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

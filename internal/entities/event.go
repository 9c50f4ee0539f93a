package entities

import "time"

type EventType string

const (
	EventDeliveryCreated         EventType = "DELIVERY_CREATED"
	EventDeliveryUpdated         EventType = "DELIVERY_UPDATED"
	EventDeliveryLocationUpdated EventType = "DELIVERY_LOCATION_UPDATED"
	EventDeliveryCompleted       EventType = "DELIVERY_COMPLETED"
)

func (t EventType) String() string {
	return string(t)
}

// Event транзитное сообщение брокера. Не персистится: создано публикацией,
// доставлено подписчикам, забыто.
type Event struct {
	ID       string        `json:"id"`
	Type     EventType     `json:"type"`
	Payload  interface{}   `json:"payload"`
	Metadata EventMetadata `json:"metadata"`
}

type EventMetadata struct {
	Timestamp     time.Time `json:"timestamp"`
	Source        string    `json:"source"`
	CorrelationID string    `json:"correlationId"`
}

// LocationUpdatedPayload тело события DELIVERY_LOCATION_UPDATED.
// Остальные события несут полную запись доставки.
type LocationUpdatedPayload struct {
	DeliveryID int64     `json:"deliveryId"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Speed      *float64  `json:"speed,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// DeliveryPayload JSON-представление доставки для событий
// DELIVERY_CREATED / DELIVERY_UPDATED / DELIVERY_COMPLETED.
type DeliveryPayload struct {
	DeliveryID           int64      `json:"deliveryId"`
	OrderID              string     `json:"orderId"`
	Status               string     `json:"status"`
	CurrentLat           *float64   `json:"currentLat,omitempty"`
	CurrentLng           *float64   `json:"currentLng,omitempty"`
	LastLocationUpdateAt *time.Time `json:"lastLocationUpdateAt,omitempty"`
	DestinationLat       *float64   `json:"destinationLat,omitempty"`
	DestinationLng       *float64   `json:"destinationLng,omitempty"`
	EstimatedArrivalAt   *time.Time `json:"estimatedArrivalAt,omitempty"`
	StartedAt            *time.Time `json:"startedAt,omitempty"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
}

// NewDeliveryPayload собирает полезную нагрузку события из доменной сущности.
func NewDeliveryPayload(delivery *Delivery) DeliveryPayload {
	return DeliveryPayload{
		DeliveryID:           delivery.ID,
		OrderID:              delivery.OrderID,
		Status:               delivery.Status.String(),
		CurrentLat:           delivery.CurrentLat,
		CurrentLng:           delivery.CurrentLng,
		LastLocationUpdateAt: delivery.LastLocationUpdateAt,
		DestinationLat:       delivery.DestinationLat,
		DestinationLng:       delivery.DestinationLng,
		EstimatedArrivalAt:   delivery.EstimatedArrivalAt,
		StartedAt:            delivery.StartedAt,
		CompletedAt:          delivery.CompletedAt,
	}
}

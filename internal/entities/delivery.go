package entities

import "time"

type Delivery struct {
	ID                   int64
	OrderID              string
	Status               DeliveryStatusType
	CurrentLat           *float64
	CurrentLng           *float64
	LastLocationUpdateAt *time.Time
	DestinationLat       *float64
	DestinationLng       *float64
	EstimatedArrivalAt   *time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type DeliveryStatusType string

const (
	DeliveryPending   DeliveryStatusType = "pending"
	DeliveryInTransit DeliveryStatusType = "in_transit"
	DeliveryDelivered DeliveryStatusType = "delivered"
	DeliveryCancelled DeliveryStatusType = "cancelled"
	DeliveryFailed    DeliveryStatusType = "failed"
)

func (t DeliveryStatusType) String() string {
	return string(t)
}

// Terminal сообщает, допускает ли статус дальнейшие переходы.
func (t DeliveryStatusType) Terminal() bool {
	switch t {
	case DeliveryDelivered, DeliveryCancelled, DeliveryFailed:
		return true
	default:
		return false
	}
}

type DeliveryModify struct {
	ID                   *int64
	OrderID              *string
	Status               *DeliveryStatusType
	CurrentLat           *float64
	CurrentLng           *float64
	LastLocationUpdateAt *time.Time
	DestinationLat       *float64
	DestinationLng       *float64
	EstimatedArrivalAt   *time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
}

package delivery

import "time"

type DeliveryDB struct {
	ID                   int64
	OrderID              string
	Status               string
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

type DeliveryModifyDB struct {
	ID                   *int64
	OrderID              *string
	Status               *string
	CurrentLat           *float64
	CurrentLng           *float64
	LastLocationUpdateAt *time.Time
	DestinationLat       *float64
	DestinationLng       *float64
	EstimatedArrivalAt   *time.Time
	StartedAt            *time.Time
	CompletedAt          *time.Time
}

// Package dto описывает JSON-представления REST API.
package dto

import (
	"time"

	"tracking/internal/entities"
)

type Delivery struct {
	ID                   int64      `json:"id"`
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
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func NewDelivery(delivery *entities.Delivery) Delivery {
	return Delivery{
		ID:                   delivery.ID,
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
		CreatedAt:            delivery.CreatedAt,
		UpdatedAt:            delivery.UpdatedAt,
	}
}

func NewDeliveries(deliveries []entities.Delivery) []Delivery {
	result := make([]Delivery, 0, len(deliveries))
	for i := range deliveries {
		result = append(result, NewDelivery(&deliveries[i]))
	}
	return result
}

type LocationSample struct {
	ID           int64                  `json:"id"`
	DeliveryID   int64                  `json:"deliveryId"`
	Lat          float64                `json:"lat"`
	Lng          float64                `json:"lng"`
	Speed        *float64               `json:"speed,omitempty"`
	Heading      *float64               `json:"heading,omitempty"`
	Accuracy     *float64               `json:"accuracy,omitempty"`
	BatteryLevel *float64               `json:"batteryLevel,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	RecordedAt   time.Time              `json:"recordedAt"`
}

func NewLocationSample(sample *entities.LocationSample) LocationSample {
	return LocationSample{
		ID:           sample.ID,
		DeliveryID:   sample.DeliveryID,
		Lat:          sample.Lat,
		Lng:          sample.Lng,
		Speed:        sample.Speed,
		Heading:      sample.Heading,
		Accuracy:     sample.Accuracy,
		BatteryLevel: sample.BatteryLevel,
		Metadata:     sample.Metadata,
		RecordedAt:   sample.RecordedAt,
	}
}

func NewLocationSamples(samples []entities.LocationSample) []LocationSample {
	result := make([]LocationSample, 0, len(samples))
	for i := range samples {
		result = append(result, NewLocationSample(&samples[i]))
	}
	return result
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type CreateDeliveryRequest struct {
	OrderID        string   `json:"orderId"`
	DestinationLat *float64 `json:"destinationLat,omitempty"`
	DestinationLng *float64 `json:"destinationLng,omitempty"`
}

type UpdateLocationRequest struct {
	Lat          *float64               `json:"lat"`
	Lng          *float64               `json:"lng"`
	Speed        *float64               `json:"speed,omitempty"`
	Heading      *float64               `json:"heading,omitempty"`
	Accuracy     *float64               `json:"accuracy,omitempty"`
	BatteryLevel *float64               `json:"batteryLevel,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
	RecordedAt   *time.Time             `json:"recordedAt,omitempty"`
}

package delivery

import "tracking/internal/entities"

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}
	return &entities.Delivery{
		ID:                   d.ID,
		OrderID:              d.OrderID,
		Status:               entities.DeliveryStatusType(d.Status),
		CurrentLat:           d.CurrentLat,
		CurrentLng:           d.CurrentLng,
		LastLocationUpdateAt: d.LastLocationUpdateAt,
		DestinationLat:       d.DestinationLat,
		DestinationLng:       d.DestinationLng,
		EstimatedArrivalAt:   d.EstimatedArrivalAt,
		StartedAt:            d.StartedAt,
		CompletedAt:          d.CompletedAt,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

func ToDomainList(models []DeliveryDB) []entities.Delivery {
	deliveries := make([]entities.Delivery, 0, len(models))
	for i := range models {
		deliveries = append(deliveries, *ToDomain(&models[i]))
	}
	return deliveries
}

func FromDomainModify(d *entities.DeliveryModify) *DeliveryModifyDB {
	if d == nil {
		return nil
	}
	deliveryModifyDB := &DeliveryModifyDB{
		ID:                   d.ID,
		OrderID:              d.OrderID,
		CurrentLat:           d.CurrentLat,
		CurrentLng:           d.CurrentLng,
		LastLocationUpdateAt: d.LastLocationUpdateAt,
		DestinationLat:       d.DestinationLat,
		DestinationLng:       d.DestinationLng,
		EstimatedArrivalAt:   d.EstimatedArrivalAt,
		StartedAt:            d.StartedAt,
		CompletedAt:          d.CompletedAt,
	}

	if d.Status != nil {
		status := d.Status.String()
		deliveryModifyDB.Status = &status
	}

	return deliveryModifyDB
}

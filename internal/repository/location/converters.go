package location

import "tracking/internal/entities"

func ToDomain(s *LocationSampleDB) *entities.LocationSample {
	if s == nil {
		return nil
	}
	return &entities.LocationSample{
		ID:           s.ID,
		DeliveryID:   s.DeliveryID,
		Lat:          s.Lat,
		Lng:          s.Lng,
		Speed:        s.Speed,
		Heading:      s.Heading,
		Accuracy:     s.Accuracy,
		BatteryLevel: s.BatteryLevel,
		Metadata:     s.Metadata,
		RecordedAt:   s.RecordedAt,
	}
}

func ToDomainList(models []LocationSampleDB) []entities.LocationSample {
	samples := make([]entities.LocationSample, 0, len(models))
	for i := range models {
		samples = append(samples, *ToDomain(&models[i]))
	}
	return samples
}

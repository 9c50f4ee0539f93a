package entities

import "time"

// LocationSample одна точка истории перемещения доставки. История append-only:
// записи не изменяются и не удаляются (кроме каскадного удаления доставки).
type LocationSample struct {
	ID           int64
	DeliveryID   int64
	Lat          float64
	Lng          float64
	Speed        *float64
	Heading      *float64
	Accuracy     *float64
	BatteryLevel *float64
	Metadata     map[string]interface{}
	RecordedAt   time.Time
}

type LocationSampleModify struct {
	DeliveryID   *int64
	Lat          *float64
	Lng          *float64
	Speed        *float64
	Heading      *float64
	Accuracy     *float64
	BatteryLevel *float64
	Metadata     map[string]interface{}
	RecordedAt   *time.Time
}

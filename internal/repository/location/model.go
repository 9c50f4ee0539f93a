package location

import "time"

type LocationSampleDB struct {
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

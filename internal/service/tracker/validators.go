package tracker

import "strings"

func isValidOrderID(orderID string) bool {
	return strings.TrimSpace(orderID) != ""
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}

func isValidCoordinates(lat, lng float64) bool {
	return isValidLatitude(lat) && isValidLongitude(lng)
}

func isValidStatus(status string) bool {
	switch status {
	case "pending", "in_transit", "delivered", "cancelled", "failed":
		return true
	default:
		return false
	}
}

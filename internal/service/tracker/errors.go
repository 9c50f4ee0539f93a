package tracker

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidOrderID        = errors.New("invalid order id")
	ErrInvalidCoordinates    = errors.New("invalid coordinates")
	ErrInvalidSpeed          = errors.New("invalid speed")
	ErrInvalidStatus         = errors.New("invalid delivery status")

	ErrDeliveryNotFound    = errors.New("delivery not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderAlreadyTracked = errors.New("order already has a delivery")

	// ErrInvalidTransition запрошенный переход не разрешен машиной статусов.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDeliveryInactive доставка в терминальном статусе; поздние координаты
	// отклоняются, в историю не пишутся.
	ErrDeliveryInactive = errors.New("delivery is not active")
)

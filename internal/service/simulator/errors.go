package simulator

import "errors"

var (
	ErrDeliveryNotRunnable = errors.New("delivery status does not allow simulation")
	ErrInvalidConfig       = errors.New("invalid simulator config")
)

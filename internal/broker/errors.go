package broker

import "errors"

var (
	ErrClosed         = errors.New("broker is closed")
	ErrMarshalPayload = errors.New("marshal event payload")
)

package orders

import "errors"

var (
	ErrInvalidOrder  = errors.New("invalid order payload")
	ErrEmailRequired = errors.New("email is required to send order confirmation")
	ErrInvalidStatus = errors.New("invalid status")
	ErrOrderNotFound = errors.New("order not found")
)

package delivery

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidDeliveryID     = errors.New("invalid delivery id")
	ErrInvalidOrderNumber    = errors.New("invalid order number")
	ErrInvalidCourierID      = errors.New("invalid courier id")
	ErrInvalidCustomerID     = errors.New("invalid customer id")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidTimestamps     = errors.New("invalid timestamps")
	ErrInvalidPeriod         = errors.New("invalid period")

	ErrDeliveryNotFound = errors.New("delivery not found")
	ErrCourierNotFound  = errors.New("courier not found")
)

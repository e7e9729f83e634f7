package courier

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidCourierID      = errors.New("invalid courier id")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidPosition       = errors.New("invalid position")

	ErrCourierNotFound      = errors.New("courier not found")
	ErrConflict             = errors.New("resource already exists")
	ErrCourierHasDeliveries = errors.New("courier has deliveries")
)

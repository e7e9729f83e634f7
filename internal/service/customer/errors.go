package customer

import "errors"

var (
	ErrMissingRequiredFields = errors.New("missing required fields")
	ErrInvalidCustomerID     = errors.New("invalid customer id")
	ErrInvalidName           = errors.New("invalid name")
	ErrInvalidAddress        = errors.New("invalid address")
	ErrInvalidPhone          = errors.New("invalid phone")

	ErrCustomerNotFound = errors.New("customer not found")
)

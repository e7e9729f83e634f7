package customer

import "time"

type CustomerDB struct {
	ID           int64
	Name         string
	Street       string
	Number       string
	Neighborhood string
	Phone        *string
	CreatedAt    time.Time
}

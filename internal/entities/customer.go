package entities

import "time"

type Customer struct {
	ID           int64
	Name         string
	Street       string
	Number       string
	Neighborhood string
	Phone        *string
	CreatedAt    time.Time
}

func (c Customer) Address() string {
	addr := c.Street
	if c.Number != "" {
		addr += ", " + c.Number
	}
	if c.Neighborhood != "" {
		addr += " - " + c.Neighborhood
	}
	return addr
}

type CustomerModify struct {
	ID           *int64
	Name         *string
	Street       *string
	Number       *string
	Neighborhood *string
	Phone        *string
}

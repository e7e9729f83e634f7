package delivery

import "time"

type DeliveryDB struct {
	ID              int64
	OrderNumber     string
	CustomerID      *int64 // NULL после удаления клиента
	CustomerName    string
	CourierID       int64
	PaymentMethod   string
	Subtotal        int64
	DeliveryFee     int64
	Status          string
	CreatedAt       time.Time
	DepartureTime   *time.Time
	DeliveredTime   *time.Time
	DurationSeconds *int64
}

type DeliveryModifyDB struct {
	OrderNumber   *string
	CustomerID    *int64
	CustomerName  *string
	CourierID     *int64
	PaymentMethod *string
	Subtotal      *int64
	DeliveryFee   *int64
	Status        *string
	CreatedAt     *time.Time
}

package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownStatus        = errors.New("unknown delivery status")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

type DeliveryStatusType string

const (
	DeliveryAwaiting  DeliveryStatusType = "awaiting"
	DeliveryEnRoute   DeliveryStatusType = "en_route"
	DeliveryDelivered DeliveryStatusType = "delivered"
	DeliveryCancelled DeliveryStatusType = "cancelled"
)

func ParseDeliveryStatus(s string) (DeliveryStatusType, error) {
	status := DeliveryStatusType(s)
	switch status {
	case DeliveryAwaiting, DeliveryEnRoute, DeliveryDelivered, DeliveryCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

func (s DeliveryStatusType) String() string {
	return string(s)
}

// IsActive - заказ еще на доске диспетчера.
func (s DeliveryStatusType) IsActive() bool {
	return s == DeliveryAwaiting || s == DeliveryEnRoute
}

func (s DeliveryStatusType) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

type PaymentMethodType string

const (
	PaymentCash       PaymentMethodType = "cash"
	PaymentPix        PaymentMethodType = "pix"
	PaymentDebitCard  PaymentMethodType = "debit_card"
	PaymentCreditCard PaymentMethodType = "credit_card"
)

func ParsePaymentMethod(s string) (PaymentMethodType, error) {
	method := PaymentMethodType(s)
	switch method {
	case PaymentCash, PaymentPix, PaymentDebitCard, PaymentCreditCard:
		return method, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, s)
	}
}

func (p PaymentMethodType) String() string {
	return string(p)
}

// Delivery - заказ ("entrega"), закрепленный за курьером.
//
// DepartureTime, DeliveredTime и DurationSeconds пишутся один раз и
// меняются только через lifecycle.
type Delivery struct {
	ID              int64
	OrderNumber     string
	CustomerID      int64
	CustomerName    string
	CourierID       int64
	PaymentMethod   PaymentMethodType
	Subtotal        Money
	DeliveryFee     Money
	Status          DeliveryStatusType
	CreatedAt       time.Time
	DepartureTime   *time.Time
	DeliveredTime   *time.Time
	DurationSeconds *int64
}

// Clone возвращает копию, не разделяющую опциональные поля с оригиналом.
func (d Delivery) Clone() Delivery {
	c := d
	if d.DepartureTime != nil {
		t := *d.DepartureTime
		c.DepartureTime = &t
	}
	if d.DeliveredTime != nil {
		t := *d.DeliveredTime
		c.DeliveredTime = &t
	}
	if d.DurationSeconds != nil {
		s := *d.DurationSeconds
		c.DurationSeconds = &s
	}
	return c
}

// Total - сумма заказа вместе с доставкой.
func (d Delivery) Total() Money {
	return d.Subtotal + d.DeliveryFee
}

type DeliveryModify struct {
	ID            *int64
	OrderNumber   *string
	CustomerID    *int64
	CustomerName  *string
	CourierID     *int64
	PaymentMethod *PaymentMethodType
	Subtotal      *Money
	DeliveryFee   *Money
	Status        *DeliveryStatusType
	CreatedAt     *time.Time
}

// DeliveryStatusUpdate - только измененные переходом поля.
type DeliveryStatusUpdate struct {
	ID              int64
	Status          DeliveryStatusType
	DepartureTime   *time.Time
	DeliveredTime   *time.Time
	DurationSeconds *int64
}

type DeliveryFilter struct {
	CourierID   *int64
	Statuses    []DeliveryStatusType
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

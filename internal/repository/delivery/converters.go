package delivery

import (
	"fmt"

	"dispatch/internal/entities"
)

// ToDomain отвергает строки с неизвестным статусом или способом оплаты,
// чтобы мусор из базы не попал на доску.
func ToDomain(d *DeliveryDB) (*entities.Delivery, error) {
	if d == nil {
		return nil, nil
	}

	status, err := entities.ParseDeliveryStatus(d.Status)
	if err != nil {
		return nil, fmt.Errorf("delivery %d: %w", d.ID, err)
	}
	method, err := entities.ParsePaymentMethod(d.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("delivery %d: %w", d.ID, err)
	}

	delivery := &entities.Delivery{
		ID:              d.ID,
		OrderNumber:     d.OrderNumber,
		CustomerName:    d.CustomerName,
		CourierID:       d.CourierID,
		PaymentMethod:   method,
		Subtotal:        entities.Money(d.Subtotal),
		DeliveryFee:     entities.Money(d.DeliveryFee),
		Status:          status,
		CreatedAt:       d.CreatedAt,
		DepartureTime:   d.DepartureTime,
		DeliveredTime:   d.DeliveredTime,
		DurationSeconds: d.DurationSeconds,
	}
	if d.CustomerID != nil {
		delivery.CustomerID = *d.CustomerID
	}

	return delivery, nil
}

func ToDomainList(deliveriesDB []DeliveryDB) ([]entities.Delivery, error) {
	result := make([]entities.Delivery, 0, len(deliveriesDB))
	for i := range deliveriesDB {
		d, err := ToDomain(&deliveriesDB[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, nil
}

func FromDomainModify(d *entities.DeliveryModify) *DeliveryModifyDB {
	if d == nil {
		return nil
	}

	modifyDB := &DeliveryModifyDB{
		OrderNumber:  d.OrderNumber,
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		CourierID:    d.CourierID,
		CreatedAt:    d.CreatedAt,
	}
	if d.PaymentMethod != nil {
		method := d.PaymentMethod.String()
		modifyDB.PaymentMethod = &method
	}
	if d.Subtotal != nil {
		subtotal := int64(*d.Subtotal)
		modifyDB.Subtotal = &subtotal
	}
	if d.DeliveryFee != nil {
		fee := int64(*d.DeliveryFee)
		modifyDB.DeliveryFee = &fee
	}
	if d.Status != nil {
		status := d.Status.String()
		modifyDB.Status = &status
	}

	return modifyDB
}

func FromDomain(d entities.Delivery) DeliveryDB {
	deliveryDB := DeliveryDB{
		ID:              d.ID,
		OrderNumber:     d.OrderNumber,
		CustomerName:    d.CustomerName,
		CourierID:       d.CourierID,
		PaymentMethod:   d.PaymentMethod.String(),
		Subtotal:        int64(d.Subtotal),
		DeliveryFee:     int64(d.DeliveryFee),
		Status:          d.Status.String(),
		CreatedAt:       d.CreatedAt,
		DepartureTime:   d.DepartureTime,
		DeliveredTime:   d.DeliveredTime,
		DurationSeconds: d.DurationSeconds,
	}
	if d.CustomerID > 0 {
		customerID := d.CustomerID
		deliveryDB.CustomerID = &customerID
	}
	return deliveryDB
}

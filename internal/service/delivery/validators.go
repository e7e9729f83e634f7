package delivery

import (
	"strings"

	"dispatch/internal/entities"
)

func isValidOrderNumber(orderNumber string) bool {
	return strings.TrimSpace(orderNumber) != ""
}

func isValidAmount(amount entities.Money) bool {
	return amount >= 0
}

func isValidPaymentMethod(method entities.PaymentMethodType) bool {
	_, err := entities.ParsePaymentMethod(method.String())
	return err == nil
}

func isValidStatus(status entities.DeliveryStatusType) bool {
	_, err := entities.ParseDeliveryStatus(status.String())
	return err == nil
}

// isValidTimestamps - ручная правка может выставить любой статус,
// но доставка не может завершиться раньше выезда.
func isValidTimestamps(d entities.Delivery) bool {
	if d.DepartureTime != nil && d.DeliveredTime != nil && d.DeliveredTime.Before(*d.DepartureTime) {
		return false
	}
	return d.DurationSeconds == nil || *d.DurationSeconds >= 0
}

// Package lifecycle - переходы статуса доставки и учет времени в пути.
// Функции чистые: получают запись и время, возвращают новую запись.
package lifecycle

import (
	"time"

	"dispatch/internal/entities"
	"github.com/AlekSi/pointer"
)

var allowedTransitions = map[entities.DeliveryStatusType][]entities.DeliveryStatusType{
	entities.DeliveryAwaiting: {entities.DeliveryEnRoute, entities.DeliveryCancelled},
	entities.DeliveryEnRoute:  {entities.DeliveryDelivered, entities.DeliveryCancelled},
}

// AllowedTransitions - переходы, которые предлагаются кнопками для текущего статуса.
// Для терминальных статусов пусто.
func AllowedTransitions(status entities.DeliveryStatusType) []entities.DeliveryStatusType {
	next := allowedTransitions[status]
	out := make([]entities.DeliveryStatusType, len(next))
	copy(out, next)
	return out
}

func IsAllowedTransition(from, to entities.DeliveryStatusType) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AdvanceStatus применяет переход статуса к копии d.
//
//   - en_route: DepartureTime = now, если еще не было выезда;
//   - delivered с выездом: DeliveredTime = now, DurationSeconds = floor((now - выезд) / 1s);
//   - delivered без выезда и cancelled: только статус.
//
// Уже записанные DepartureTime/DeliveredTime не перезаписываются.
func AdvanceStatus(d entities.Delivery, next entities.DeliveryStatusType, now time.Time) entities.Delivery {
	out := d.Clone()
	out.Status = next

	switch next {
	case entities.DeliveryEnRoute:
		if out.DepartureTime == nil {
			out.DepartureTime = pointer.To(now)
		}
	case entities.DeliveryDelivered:
		if out.DepartureTime == nil || out.DeliveredTime != nil {
			break
		}
		out.DeliveredTime = pointer.To(now)
		out.DurationSeconds = pointer.To(durationSeconds(*out.DepartureTime, now))
	}

	return out
}

// ReplaceDelivery - ручная правка менеджером: запись заменяется целиком,
// правила AdvanceStatus не применяются. От текущей записи остается только ID.
func ReplaceDelivery(current, edited entities.Delivery) entities.Delivery {
	out := edited.Clone()
	out.ID = current.ID
	return out
}

// Changes - поля, которые надо сохранить после перехода prev -> next.
func Changes(prev, next entities.Delivery) entities.DeliveryStatusUpdate {
	update := entities.DeliveryStatusUpdate{
		ID:     next.ID,
		Status: next.Status,
	}
	if !sameTime(prev.DepartureTime, next.DepartureTime) {
		update.DepartureTime = next.DepartureTime
	}
	if !sameTime(prev.DeliveredTime, next.DeliveredTime) {
		update.DeliveredTime = next.DeliveredTime
	}
	if !sameInt(prev.DurationSeconds, next.DurationSeconds) {
		update.DurationSeconds = next.DurationSeconds
	}
	return update
}

// durationSeconds округляет вниз до целых секунд.
func durationSeconds(from, to time.Time) int64 {
	ms := to.Sub(from).Milliseconds()
	secs := ms / 1000
	if ms < 0 && ms%1000 != 0 {
		secs--
	}
	return secs
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func sameInt(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

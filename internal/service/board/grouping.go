package board

import (
	"sort"
	"time"

	"dispatch/internal/entities"
)

// Partition делит доставки на активные (awaiting, en_route) и завершенные.
// Порядок внутри каждой части совпадает с исходным.
func Partition(ds []entities.Delivery) (active, finished []entities.Delivery) {
	for _, d := range ds {
		if d.Status.IsActive() {
			active = append(active, d)
		} else {
			finished = append(finished, d)
		}
	}
	return active, finished
}

// GroupActiveByCourier группирует активные доставки по курьеру.
// Список курьера идет в порядке исходной коллекции.
func GroupActiveByCourier(ds []entities.Delivery) map[int64][]entities.Delivery {
	groups := make(map[int64][]entities.Delivery)
	for _, d := range ds {
		if !d.Status.IsActive() {
			continue
		}
		groups[d.CourierID] = append(groups[d.CourierID], d)
	}
	return groups
}

// FilterFinished оставляет завершенные доставки курьера (или всех, если courierID == nil)
// и сортирует их по CreatedAt от новых к старым. Равные CreatedAt сохраняют исходный порядок.
func FilterFinished(ds []entities.Delivery, courierID *int64) []entities.Delivery {
	out := make([]entities.Delivery, 0, len(ds))
	for _, d := range ds {
		if !d.Status.IsTerminal() {
			continue
		}
		if courierID != nil && d.CourierID != *courierID {
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// TodayEarnings - сумма DeliveryFee доставленных курьером заказов, у которых
// DeliveredTime попадает в календарный день now в его часовом поясе.
func TodayEarnings(ds []entities.Delivery, courierID int64, now time.Time) entities.Money {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var total entities.Money
	for _, d := range ds {
		if d.CourierID != courierID || d.Status != entities.DeliveryDelivered || d.DeliveredTime == nil {
			continue
		}
		if d.DeliveredTime.Before(start) || !d.DeliveredTime.Before(end) {
			continue
		}
		total += d.DeliveryFee
	}
	return total
}

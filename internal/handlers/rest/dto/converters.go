package dto

import (
	"sort"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/lifecycle"
)

// FromDelivery строит представление доставки. now нужен для живого счетчика.
func FromDelivery(d entities.Delivery, now time.Time) Delivery {
	res := Delivery{
		ID:              d.ID,
		OrderNumber:     d.OrderNumber,
		CustomerName:    d.CustomerName,
		CourierID:       d.CourierID,
		PaymentMethod:   d.PaymentMethod.String(),
		Subtotal:        d.Subtotal.String(),
		DeliveryFee:     d.DeliveryFee.String(),
		Total:           d.Total().String(),
		Status:          d.Status.String(),
		CreatedAt:       d.CreatedAt,
		DepartureTime:   d.DepartureTime,
		DeliveredTime:   d.DeliveredTime,
		DurationSeconds: d.DurationSeconds,
	}
	if d.CustomerID > 0 {
		id := d.CustomerID
		res.CustomerID = &id
	}

	if d.Status == entities.DeliveryDelivered {
		res.Duration = lifecycle.FormatOptionalDuration(d.DurationSeconds)
	}
	if elapsed, ok := lifecycle.Elapsed(d, now); ok {
		res.Elapsed = lifecycle.FormatElapsed(elapsed)
	}

	allowed := lifecycle.AllowedTransitions(d.Status)
	res.AllowedTransitions = make([]string, 0, len(allowed))
	for _, status := range allowed {
		res.AllowedTransitions = append(res.AllowedTransitions, status.String())
	}

	return res
}

func FromDeliveries(ds []entities.Delivery, now time.Time) []Delivery {
	res := make([]Delivery, 0, len(ds))
	for _, d := range ds {
		res = append(res, FromDelivery(d, now))
	}
	return res
}

// FromBoard - группы отсортированы по id курьера.
func FromBoard(active map[int64][]entities.Delivery, finished []entities.Delivery, now time.Time) Board {
	courierIDs := make([]int64, 0, len(active))
	for id := range active {
		courierIDs = append(courierIDs, id)
	}
	sort.Slice(courierIDs, func(i, j int) bool { return courierIDs[i] < courierIDs[j] })

	groups := make([]CourierGroup, 0, len(courierIDs))
	for _, id := range courierIDs {
		groups = append(groups, CourierGroup{
			CourierID:  id,
			Deliveries: FromDeliveries(active[id], now),
		})
	}

	return Board{
		Active:   groups,
		Finished: FromDeliveries(finished, now),
	}
}

func FromCourier(c entities.Courier) Courier {
	res := Courier{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Position != nil {
		res.Position = &Position{
			Latitude:  c.Position.Latitude,
			Longitude: c.Position.Longitude,
			UpdatedAt: c.Position.ReportedAt,
		}
	}
	return res
}

func FromCustomer(c entities.Customer) Customer {
	return Customer{
		ID:           c.ID,
		Name:         c.Name,
		Street:       c.Street,
		Number:       c.Number,
		Neighborhood: c.Neighborhood,
		Address:      c.Address(),
		Phone:        c.Phone,
		CreatedAt:    c.CreatedAt,
	}
}

func FromUser(u entities.User) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role.String(),
		Approval:  u.Approval.String(),
		CourierID: u.CourierID,
		CreatedAt: u.CreatedAt,
	}
}

func FromSession(s entities.Session) Session {
	return Session{
		UserID:    s.UserID,
		Email:     s.Email,
		FullName:  s.FullName,
		Role:      s.Role.String(),
		CourierID: s.CourierID,
	}
}

func FromReport(r entities.FinancialReport) Report {
	couriers := make([]CourierReport, 0, len(r.Couriers))
	for _, c := range r.Couriers {
		couriers = append(couriers, CourierReport{
			CourierID:       c.CourierID,
			Delivered:       c.Delivered,
			Cancelled:       c.Cancelled,
			FeesTotal:       c.FeesTotal.String(),
			SubtotalTotal:   c.SubtotalTotal.String(),
			AverageDuration: c.AverageDuration,
		})
	}

	methods := make([]PaymentMethodReport, 0, len(r.PaymentMethods))
	for _, m := range r.PaymentMethods {
		methods = append(methods, PaymentMethodReport{
			Method: m.Method.String(),
			Orders: m.Orders,
			Total:  m.Total.String(),
		})
	}

	return Report{
		From:           r.From,
		To:             r.To,
		Couriers:       couriers,
		PaymentMethods: methods,
		Delivered:      r.Delivered,
		Cancelled:      r.Cancelled,
		FeesTotal:      r.FeesTotal.String(),
		SubtotalTotal:  r.SubtotalTotal.String(),
	}
}

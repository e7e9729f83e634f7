package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/lifecycle"
)

type Report struct {
	deliveries DeliveryLister
}

func New(deliveries DeliveryLister) *Report {
	return &Report{
		deliveries: deliveries,
	}
}

// GetReport собирает отчет по доставкам, созданным в [from, to).
func (r *Report) GetReport(ctx context.Context, from, to time.Time) (*entities.FinancialReport, error) {
	if from.IsZero() || to.IsZero() || !from.Before(to) {
		return nil, ErrInvalidPeriod
	}

	ds, err := r.deliveries.List(ctx, entities.DeliveryFilter{
		Statuses:    []entities.DeliveryStatusType{entities.DeliveryDelivered, entities.DeliveryCancelled},
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	report := Build(ds, from, to)
	return &report, nil
}

// Build считает агрегаты. Суммы и время в пути берутся только по
// доставленным заказам, отмененные лишь подсчитываются.
// Записи вне [from, to) и активные доставки пропускаются.
func Build(ds []entities.Delivery, from, to time.Time) entities.FinancialReport {
	report := entities.FinancialReport{
		From:           from,
		To:             to,
		Couriers:       []entities.CourierReport{},
		PaymentMethods: []entities.PaymentMethodReport{},
	}

	type courierAcc struct {
		entities.CourierReport
		durationSum   int64
		durationCount int64
	}

	couriers := make(map[int64]*courierAcc)
	methods := make(map[entities.PaymentMethodType]*entities.PaymentMethodReport)

	for _, d := range ds {
		if d.CreatedAt.Before(from) || !d.CreatedAt.Before(to) || !d.Status.IsTerminal() {
			continue
		}

		acc, ok := couriers[d.CourierID]
		if !ok {
			acc = &courierAcc{CourierReport: entities.CourierReport{CourierID: d.CourierID}}
			couriers[d.CourierID] = acc
		}

		if d.Status == entities.DeliveryCancelled {
			acc.Cancelled++
			report.Cancelled++
			continue
		}

		acc.Delivered++
		acc.FeesTotal += d.DeliveryFee
		acc.SubtotalTotal += d.Subtotal
		if d.DurationSeconds != nil {
			acc.durationSum += *d.DurationSeconds
			acc.durationCount++
		}

		m, ok := methods[d.PaymentMethod]
		if !ok {
			m = &entities.PaymentMethodReport{Method: d.PaymentMethod}
			methods[d.PaymentMethod] = m
		}
		m.Orders++
		m.Total += d.Total()

		report.Delivered++
		report.FeesTotal += d.DeliveryFee
		report.SubtotalTotal += d.Subtotal
	}

	for _, acc := range couriers {
		acc.AverageDuration = lifecycle.NotAvailable
		if acc.durationCount > 0 {
			acc.AverageDuration = lifecycle.FormatDuration(acc.durationSum / acc.durationCount)
		}
		report.Couriers = append(report.Couriers, acc.CourierReport)
	}
	sort.Slice(report.Couriers, func(i, j int) bool {
		return report.Couriers[i].CourierID < report.Couriers[j].CourierID
	})

	for _, m := range methods {
		report.PaymentMethods = append(report.PaymentMethods, *m)
	}
	sort.Slice(report.PaymentMethods, func(i, j int) bool {
		return report.PaymentMethods[i].Method < report.PaymentMethods[j].Method
	})

	return report
}

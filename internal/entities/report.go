package entities

import "time"

type CourierReport struct {
	CourierID       int64
	Delivered       int
	Cancelled       int
	FeesTotal       Money
	SubtotalTotal   Money
	AverageDuration string
}

type PaymentMethodReport struct {
	Method PaymentMethodType
	Orders int
	Total  Money
}

// FinancialReport - агрегаты за период [From, To).
type FinancialReport struct {
	From           time.Time
	To             time.Time
	Couriers       []CourierReport
	PaymentMethods []PaymentMethodReport
	Delivered      int
	Cancelled      int
	FeesTotal      Money
	SubtotalTotal  Money
}

package clock

import "time"

// Clock отдает текущее время. Все вычисления по таймингу доставки
// берут время отсюда, а не из time.Now напрямую.
type Clock interface {
	Now() time.Time
}

type Real struct{}

func New() Real {
	return Real{}
}

func (Real) Now() time.Time {
	return time.Now()
}

// Func адаптер для функций, удобно в тестах:
//
//	clock.Func(func() time.Time { return fixed })
type Func func() time.Time

func (f Func) Now() time.Time {
	return f()
}

// Fixed всегда возвращает одно и то же время.
func Fixed(t time.Time) Func {
	return func() time.Time { return t }
}

package entities

import (
	"time"
)

type Courier struct {
	ID        int64
	Name      string
	Email     string
	Position  *CourierPosition
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CourierModify struct {
	ID    *int64
	Name  *string
	Email *string
}

// CourierPosition - последняя точка с устройства курьера.
// Сервис ее только записывает, читает карта.
type CourierPosition struct {
	CourierID  int64
	Latitude   float64
	Longitude  float64
	ReportedAt time.Time
}

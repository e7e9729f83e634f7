package courier

import "time"

type CourierDB struct {
	ID                int64
	Name              string
	Email             string
	Latitude          *float64
	Longitude         *float64
	PositionUpdatedAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CourierModifyDB struct {
	ID    *int64
	Name  *string
	Email *string
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=deliveries_get_test
package deliveries_get

import (
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Board interface {
	ActiveByCourier() map[int64][]entities.Delivery
	Finished(courierID *int64) []entities.Delivery
}

type Clock interface {
	Now() time.Time
}

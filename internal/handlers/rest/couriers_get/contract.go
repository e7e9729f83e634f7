//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=couriers_get_test
package couriers_get

import (
	"context"

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

type Service interface {
	GetCouriers(ctx context.Context) ([]entities.Courier, error)
}

type Board interface {
	ActiveByCourier() map[int64][]entities.Delivery
}

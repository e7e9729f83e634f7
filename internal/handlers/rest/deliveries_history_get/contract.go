//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=deliveries_history_get_test
package deliveries_history_get

import (
	"context"
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

type Service interface {
	GetDeliveries(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error)
}

type Clock interface {
	Now() time.Time
}

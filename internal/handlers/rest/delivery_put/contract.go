//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_put_test
package delivery_put

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
	ReplaceDelivery(ctx context.Context, edited entities.Delivery) (*entities.Delivery, error)
}

type Clock interface {
	Now() time.Time
}

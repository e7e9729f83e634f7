//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_get_test
package delivery_get

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
	Get(id int64) (*entities.Delivery, error)
}

type Clock interface {
	Now() time.Time
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_earnings_get_test
package courier_earnings_get

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
	TodayEarnings(courierID int64, loc *time.Location) entities.Money
}

type Clock interface {
	Now() time.Time
}

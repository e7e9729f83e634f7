//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=report_get_test
package report_get

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
	GetReport(ctx context.Context, from, to time.Time) (*entities.FinancialReport, error)
}

type Clock interface {
	Now() time.Time
}

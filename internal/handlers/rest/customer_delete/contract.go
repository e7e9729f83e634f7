//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=customer_delete_test
package customer_delete

import (
	"context"

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
	DeleteCustomer(ctx context.Context, id int64) error
}

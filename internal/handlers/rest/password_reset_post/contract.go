//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=password_reset_post_test
package password_reset_post

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
	RequestPasswordReset(ctx context.Context, email string) error
}

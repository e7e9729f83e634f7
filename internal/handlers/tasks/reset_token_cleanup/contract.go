//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=reset_token_cleanup_test
package reset_token_cleanup

import (
	"context"

	"dispatch/pkg/logger"
)

type Service interface {
	CleanupExpiredResetTokens(ctx context.Context) (int64, error)
}

type taskLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=auth_login_post_test
package auth_login_post

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
	Login(ctx context.Context, email, password string) (*entities.AuthResult, error)
}

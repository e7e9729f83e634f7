//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=user_approval_post_test
package user_approval_post

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
	Approve(ctx context.Context, session entities.Session, userID int64) (*entities.User, error)
	Reject(ctx context.Context, session entities.Session, userID int64) (*entities.User, error)
}

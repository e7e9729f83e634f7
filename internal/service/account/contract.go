//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=account_test
package account

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, userModify entities.UserModify) (*entities.User, error)
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByResetToken(ctx context.Context, token string) (*entities.User, error)
	Update(ctx context.Context, userModify entities.UserModify) (*entities.User, error)
	ClearExpiredResetTokens(ctx context.Context, before time.Time) (int64, error)
}

type CourierService interface {
	CreateCourier(ctx context.Context, courierModify entities.CourierModify) (int64, error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

type TokenIssuer interface {
	Issue(session entities.Session) (string, time.Time, error)
}

// ResetNotifier доставляет токен сброса пользователю.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, reset entities.PasswordReset) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}

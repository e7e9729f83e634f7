//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_test
package courier

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, courierModifyEntity entities.CourierModify) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Courier, error)
	GetAll(ctx context.Context) ([]entities.Courier, error)
	Update(ctx context.Context, courierModifyEntity entities.CourierModify) (*entities.Courier, error)
	Delete(ctx context.Context, id int64) error
	UpdatePosition(ctx context.Context, position entities.CourierPosition) error
}

// PositionPublisher отправляет точку в очередь, сохраняет ее воркер.
type PositionPublisher interface {
	PublishPosition(ctx context.Context, position entities.CourierPosition) error
}

type Clock interface {
	Now() time.Time
}

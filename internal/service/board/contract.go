//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=board_test
package board

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

// Store - хранилище доставок. UpdateStatus получает только измененные поля.
type Store interface {
	ListDeliveries(ctx context.Context) ([]entities.Delivery, error)
	UpdateStatus(ctx context.Context, update entities.DeliveryStatusUpdate) (*entities.Delivery, error)
	Replace(ctx context.Context, delivery entities.Delivery) (*entities.Delivery, error)
}

type Clock interface {
	Now() time.Time
}

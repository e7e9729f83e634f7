//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"
	"time"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, deliveryModify entities.DeliveryModify) (*entities.Delivery, error)
	List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error)
	Delete(ctx context.Context, id int64) error
}

type CustomerService interface {
	GetCustomer(ctx context.Context, id int64) (*entities.Customer, error)
}

// Board - ручная правка идет через доску, чтобы не разойтись с переходом в полете.
type Board interface {
	Replace(ctx context.Context, edited entities.Delivery) (*entities.Delivery, error)
}

type TxManager interface {
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}

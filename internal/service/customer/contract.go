//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=customer_test
package customer

import (
	"context"

	"dispatch/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, customerModify entities.CustomerModify) (int64, error)
	GetByID(ctx context.Context, id int64) (*entities.Customer, error)
	GetAll(ctx context.Context) ([]entities.Customer, error)
	Update(ctx context.Context, customerModify entities.CustomerModify) (*entities.Customer, error)
	Delete(ctx context.Context, id int64) error
}

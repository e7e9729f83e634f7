//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=report_test
package report

import (
	"context"

	"dispatch/internal/entities"
)

type DeliveryLister interface {
	List(ctx context.Context, filter entities.DeliveryFilter) ([]entities.Delivery, error)
}

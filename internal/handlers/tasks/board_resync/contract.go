//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=board_resync_test
package board_resync

import (
	"context"
)

type Board interface {
	Refresh(ctx context.Context) error
}

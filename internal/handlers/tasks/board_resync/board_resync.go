package board_resync

import (
	"context"
	"fmt"
	"time"
)

// BoardResync перечитывает доску из хранилища. Первый запуск при прогреве
// воркера загружает коллекцию, дальше задача страхует от потерянных уведомлений.
type BoardResync struct {
	board    Board
	interval time.Duration
}

func NewBoardResync(board Board, interval time.Duration) *BoardResync {
	return &BoardResync{
		board:    board,
		interval: interval,
	}
}

func (b *BoardResync) TTL() time.Duration {
	return b.interval
}

func (b *BoardResync) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, b.interval)
	defer cancel()

	if err := b.board.Refresh(ctxWithTimeout); err != nil {
		return fmt.Errorf("refresh board: %w", err)
	}

	return nil
}

func (b *BoardResync) Info() string {
	return "board resync"
}

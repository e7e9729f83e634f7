// Package pgnotify слушает канал table_changed, куда триггеры пишут имя
// измененной таблицы, и зовет подписчиков этой таблицы.
//
// Доставка не гарантирует ни единственность, ни содержимое: подписчик
// должен просто перечитать данные.
package pgnotify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	Channel = "table_changed"

	initialInterval = 500 * time.Millisecond
	maxInterval     = 30 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

type Callback func(ctx context.Context)

type Listener struct {
	pool    *pgxpool.Pool
	log     logger.Logger
	retrier retrierconfig.Retrier

	// connect возвращает true, если LISTEN успел выполниться
	connect     func(ctx context.Context, resync bool) (bool, error)
	redialDelay time.Duration

	mu          sync.RWMutex
	subscribers map[string][]Callback
}

func New(pool *pgxpool.Pool, log logger.Logger) *Listener {
	l := &Listener{
		pool: pool,
		log:  log.With(logger.NewField("component", "pgnotify")),
		// переподключаемся, пока жив сервис
		retrier: backoff_adapter.New(retrierconfig.Config{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			MaxElapsedTime:  0,
			Randomization:   randomization,
			Multiplier:      multiplier,
		}),
		redialDelay: initialInterval,
		subscribers: make(map[string][]Callback),
	}
	l.connect = l.listen
	return l
}

// Subscribe регистрирует обработчик изменений таблицы.
func (l *Listener) Subscribe(table string, fn Callback) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.subscribers[table] = append(l.subscribers[table], fn)
}

// Run блокируется до отмены ctx. После обрыва соединения переподключается
// и зовет всех подписчиков: пока не слушали, изменения могли пройти мимо.
// Отсчет backoff начинается заново после каждого соединения, дошедшего до LISTEN.
func (l *Listener) Run(ctx context.Context) error {
	l.log.Info("listener starting", logger.NewField("channel", Channel))

	resync := false
	for {
		var lost error
		err := l.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
			established, err := l.connect(ctx, resync)
			resync = true
			if ctx.Err() != nil {
				return nil
			}
			if established {
				lost = err
				return nil
			}
			l.log.Warn("listener connect failed", logger.NewField("error", err))
			return err
		})
		if ctx.Err() != nil {
			l.log.Info("listener stopped")
			return nil
		}
		if err != nil {
			return err
		}

		l.log.Warn("listener connection lost", logger.NewField("error", lost))

		select {
		case <-ctx.Done():
			l.log.Info("listener stopped")
			return nil
		case <-time.After(l.redialDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context, resync bool) (bool, error) {
	pooled, err := l.pool.Acquire(ctx)
	if err != nil {
		return false, fmt.Errorf("acquire connection: %w", err)
	}
	// соединение после LISTEN не должно вернуться в пул
	conn := pooled.Hijack()
	defer func() {
		if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
			l.log.Warn("close listener connection", logger.NewField("error", err))
		}
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		return false, fmt.Errorf("listen: %w", err)
	}
	l.log.Info("listening for table changes")

	if resync {
		l.notifyAll(ctx)
	}

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return true, err
			}
			return true, fmt.Errorf("wait for notification: %w", err)
		}
		l.Dispatch(ctx, notification.Payload)
	}
}

// Dispatch зовет подписчиков таблицы синхронно, по очереди.
func (l *Listener) Dispatch(ctx context.Context, table string) {
	l.mu.RLock()
	callbacks := l.subscribers[table]
	l.mu.RUnlock()

	l.log.Debug("table changed",
		logger.NewField("table", table),
		logger.NewField("subscribers", len(callbacks)),
	)

	for _, fn := range callbacks {
		fn(ctx)
	}
}

func (l *Listener) notifyAll(ctx context.Context) {
	l.mu.RLock()
	tables := make([]string, 0, len(l.subscribers))
	for table := range l.subscribers {
		tables = append(tables, table)
	}
	l.mu.RUnlock()

	for _, table := range tables {
		l.Dispatch(ctx, table)
	}
}

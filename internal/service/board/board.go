// Package board держит в памяти доставки доски диспетчера и проводит
// через нее смену статусов: новое значение видно сразу, запись в хранилище
// идет в фоне, при ошибке запись возвращается к снимку до перехода.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
)

type Board struct {
	clock Clock
	store Store
	log   logger.Logger

	mu    sync.RWMutex
	items []entities.Delivery
	index map[int64]int

	// busy - id, по которым идет переход или ручная правка.
	busy map[int64]struct{}

	// seq растет на каждое локальное изменение, touched[id] - seq последнего из них.
	// Refresh не трогает записи, измененные после начала выборки.
	seq     uint64
	touched map[int64]uint64

	refreshGen uint64
	appliedGen uint64

	wg sync.WaitGroup
}

func New(clock Clock, store Store, log logger.Logger) (*Board, error) {
	if clock == nil {
		return nil, ErrNilClock
	}
	if store == nil {
		return nil, ErrNilStore
	}
	if log == nil {
		return nil, ErrNilLogger
	}

	return &Board{
		clock:   clock,
		store:   store,
		log:     log.With(logger.NewField("component", "board")),
		index:   make(map[int64]int),
		busy:    make(map[int64]struct{}),
		touched: make(map[int64]uint64),
	}, nil
}

// Refresh перечитывает все доставки и заменяет коллекцию целиком.
// Повторные вызовы безопасны: выборка, начатая раньше уже примененной, отбрасывается.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.refreshGen++
	gen := b.refreshGen
	startSeq := b.seq
	b.mu.Unlock()

	fetched, err := b.store.ListDeliveries(ctx)
	if err != nil {
		return fmt.Errorf("list deliveries: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if gen < b.appliedGen {
		return nil
	}
	b.appliedGen = gen

	items := make([]entities.Delivery, 0, len(fetched))
	index := make(map[int64]int, len(fetched))
	for _, d := range fetched {
		if local, ok := b.localOverride(d.ID, startSeq); ok {
			d = local
		}
		index[d.ID] = len(items)
		items = append(items, d.Clone())
	}

	for id, s := range b.touched {
		if s <= startSeq {
			delete(b.touched, id)
		}
	}

	b.items = items
	b.index = index

	return nil
}

// localOverride - локальное значение, которое новее выборки. Вызывается под mu.
func (b *Board) localOverride(id int64, startSeq uint64) (entities.Delivery, bool) {
	i, ok := b.index[id]
	if !ok {
		return entities.Delivery{}, false
	}
	if _, inFlight := b.busy[id]; inFlight {
		return b.items[i], true
	}
	if b.touched[id] > startSeq {
		return b.items[i], true
	}
	return entities.Delivery{}, false
}

// HandleChange - колбэк уведомления об изменении таблицы deliveries.
func (b *Board) HandleChange(ctx context.Context) {
	if err := b.Refresh(ctx); err != nil {
		b.log.Warn("refresh on change notification", logger.NewField("error", err))
	}
}

// Advance применяет переход к локальной записи и запускает сохранение.
// Результат сохранения доступен через Transition.Wait.
//
// Проверяется только, что статус другой: какие переходы предлагать, решает вызывающий.
func (b *Board) Advance(ctx context.Context, id int64, next entities.DeliveryStatusType) (*Transition, error) {
	if _, err := entities.ParseDeliveryStatus(string(next)); err != nil {
		return nil, err
	}

	b.mu.Lock()
	i, ok := b.index[id]
	if !ok {
		b.mu.Unlock()
		return nil, ErrDeliveryNotFound
	}
	if _, inFlight := b.busy[id]; inFlight {
		b.mu.Unlock()
		return nil, ErrTransitionInFlight
	}
	current := b.items[i]
	if current.Status == next {
		b.mu.Unlock()
		return nil, ErrSameStatus
	}

	applied := lifecycle.AdvanceStatus(current, next, b.clock.Now())
	tr := &Transition{
		Previous: current.Clone(),
		Applied:  applied.Clone(),
		done:     make(chan struct{}),
	}

	b.items[i] = applied
	b.busy[id] = struct{}{}
	b.markTouched(id)
	b.wg.Add(1)
	b.mu.Unlock()

	update := lifecycle.Changes(tr.Previous, tr.Applied)

	// запись доводится до конца даже после отмены запроса
	go b.persist(context.WithoutCancel(ctx), tr, update)

	return tr, nil
}

// AdvanceAndWait запускает переход и ждет, пока он сохранится или откатится.
// Отмена ctx прекращает ожидание, но не сохранение.
func (b *Board) AdvanceAndWait(ctx context.Context, id int64, next entities.DeliveryStatusType) (*entities.Delivery, error) {
	tr, err := b.Advance(ctx, id, next)
	if err != nil {
		return nil, err
	}
	return tr.Wait(ctx)
}

func (b *Board) persist(ctx context.Context, tr *Transition, update entities.DeliveryStatusUpdate) {
	defer b.wg.Done()

	persisted, err := b.store.UpdateStatus(ctx, update)

	b.mu.Lock()
	id := tr.Applied.ID
	delete(b.busy, id)
	b.markTouched(id)

	if err != nil {
		if i, ok := b.index[id]; ok {
			b.items[i] = tr.Previous.Clone()
		}
		b.mu.Unlock()

		TransitionsTotal.WithLabelValues(update.Status.String(), "rollback").Inc()
		RollbacksTotal.Inc()
		b.log.Warn("delivery transition rolled back",
			logger.NewField("delivery_id", id),
			logger.NewField("status", update.Status.String()),
			logger.NewField("error", err),
		)
		tr.finish(nil, fmt.Errorf("%w: %w", ErrPersistFailed, err))
		return
	}

	result := tr.Applied.Clone()
	if persisted != nil {
		result = persisted.Clone()
	}
	if i, ok := b.index[id]; ok {
		b.items[i] = result.Clone()
	}
	b.mu.Unlock()

	TransitionsTotal.WithLabelValues(update.Status.String(), "ok").Inc()
	if update.DurationSeconds != nil {
		DeliveryDuration.Observe(float64(*update.DurationSeconds))
	}
	tr.finish(&result, nil)
}

// Replace - ручная правка менеджером. Сохраняется синхронно, правила
// переходов не применяются. Пока по записи идет переход, правка отклоняется.
func (b *Board) Replace(ctx context.Context, edited entities.Delivery) (*entities.Delivery, error) {
	b.mu.Lock()
	i, ok := b.index[edited.ID]
	if !ok {
		b.mu.Unlock()
		return nil, ErrDeliveryNotFound
	}
	if _, inFlight := b.busy[edited.ID]; inFlight {
		b.mu.Unlock()
		return nil, ErrTransitionInFlight
	}
	replaced := lifecycle.ReplaceDelivery(b.items[i], edited)
	b.busy[edited.ID] = struct{}{}
	b.mu.Unlock()

	// правка, уже записанная в базу, применяется и при отмене запроса
	persisted, err := b.store.Replace(context.WithoutCancel(ctx), replaced)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.busy, edited.ID)
	if err != nil {
		return nil, fmt.Errorf("replace delivery: %w", err)
	}

	result := replaced
	if persisted != nil {
		result = persisted.Clone()
	}
	if i, ok := b.index[edited.ID]; ok {
		b.items[i] = result.Clone()
	}
	b.markTouched(edited.ID)

	return &result, nil
}

// Wait ждет завершения всех запущенных сохранений.
func (b *Board) Wait() {
	b.wg.Wait()
}

func (b *Board) markTouched(id int64) {
	b.seq++
	b.touched[id] = b.seq
}

func (b *Board) Get(id int64) (*entities.Delivery, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i, ok := b.index[id]
	if !ok {
		return nil, ErrDeliveryNotFound
	}
	d := b.items[i].Clone()
	return &d, nil
}

// Snapshot - копия коллекции в порядке последней выборки.
func (b *Board) Snapshot() []entities.Delivery {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]entities.Delivery, len(b.items))
	for i, d := range b.items {
		out[i] = d.Clone()
	}
	return out
}

// Elapsed - живое время в пути по часам доски.
func (b *Board) Elapsed(id int64) (time.Duration, bool, error) {
	d, err := b.Get(id)
	if err != nil {
		return 0, false, err
	}
	elapsed, ok := lifecycle.Elapsed(*d, b.clock.Now())
	return elapsed, ok, nil
}

func (b *Board) ActiveByCourier() map[int64][]entities.Delivery {
	return GroupActiveByCourier(b.Snapshot())
}

func (b *Board) Finished(courierID *int64) []entities.Delivery {
	return FilterFinished(b.Snapshot(), courierID)
}

// TodayEarnings считает заработок за текущий день в часовом поясе loc.
func (b *Board) TodayEarnings(courierID int64, loc *time.Location) entities.Money {
	if loc == nil {
		loc = time.Local
	}
	return TodayEarnings(b.Snapshot(), courierID, b.clock.Now().In(loc))
}

// Transition - запущенный переход статуса.
type Transition struct {
	// Previous - снимок до перехода, к нему запись возвращается при ошибке.
	Previous entities.Delivery
	// Applied - значение, показанное сразу после перехода.
	Applied entities.Delivery

	done   chan struct{}
	result *entities.Delivery
	err    error
}

func (t *Transition) finish(result *entities.Delivery, err error) {
	t.result = result
	t.err = err
	close(t.done)
}

func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Wait возвращает сохраненную запись или ErrPersistFailed после отката.
// Отмена ctx прекращает ожидание, но не сохранение.
func (t *Transition) Wait(ctx context.Context) (*entities.Delivery, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsRolledBack - переход завершился откатом.
func IsRolledBack(err error) bool {
	return errors.Is(err, ErrPersistFailed)
}

package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"dispatch/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Task определяет интерфейс для фоновых задач, которые могут выполняться периодически.
type Task interface {
	// TTL возвращает интервал между выполнениями задачи.
	TTL() time.Duration

	// Do выполняет логику задачи.
	Do(context.Context) error

	// Info возвращает читаемое описание задачи для логгирования и отладки.
	Info() string
}

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

// Worker управляет выполнением набора фоновых задач.
type Worker struct {
	log   handlerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New создает и запускает Worker для выполнения фоновых задач.
//
// Поведение функции:
//  1. Все задачи сначала выполняются синхронно для инициализации ("прогрев").
//     Для доски доставок это первичная загрузка коллекции до старта HTTP сервера.
//  2. Если любая задача завершается с ошибкой или паникой на этапе инициализации,
//     New возвращает ошибку и Worker не создается.
//     Каждый запуск учитывается в background_task_runs_total.
//  3. Задачи выполняются в фоне до тех пор, пока не будет отменен переданный контекст.
func New(ctx context.Context, log handlerLogger, tasks []Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() error {
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			return worker.execute(initCtx, task)
		})
	}

	if err := initGroup.Wait(); err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.runBackgroundTask(ctx, task)
		}()
	}

	return worker, nil
}

// Wait блокируется до остановки всех периодических задач (после отмены ctx из New).
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Info("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Warn("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, task Task) {
	if err := w.execute(ctx, task); err != nil {
		w.log.Error("Background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
	}
}

// execute запускает задачу один раз, паника превращается в ошибку.
func (w *Worker) execute(ctx context.Context, task Task) (err error) {
	name := task.Info()
	start := time.Now()

	defer func() {
		result := resultOK
		if r := recover(); r != nil {
			stack := debug.Stack()
			err = fmt.Errorf("task %s panic: %v", name, r)
			result = resultPanic
			w.log.Error("Background task panic",
				logger.NewField("task", name),
				logger.NewField("recover", r),
				logger.NewField("stack", string(stack)),
			)
		} else if err != nil {
			result = resultError
		}

		TaskRunsTotal.WithLabelValues(name, result).Inc()
		TaskDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	}()

	return task.Do(ctx)
}

//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	"dispatch/internal/handlers/rest/auth_login_post"
	"dispatch/internal/handlers/rest/auth_register_post"
	"dispatch/internal/handlers/rest/courier_delete"
	"dispatch/internal/handlers/rest/courier_get"
	"dispatch/internal/handlers/rest/courier_position_post"
	"dispatch/internal/handlers/rest/courier_post"
	"dispatch/internal/handlers/rest/courier_put"
	"dispatch/internal/handlers/rest/couriers_get"
	"dispatch/internal/handlers/rest/customer_delete"
	"dispatch/internal/handlers/rest/customer_get"
	"dispatch/internal/handlers/rest/customer_post"
	"dispatch/internal/handlers/rest/customer_put"
	"dispatch/internal/handlers/rest/customers_get"
	"dispatch/internal/handlers/rest/deliveries_history_get"
	"dispatch/internal/handlers/rest/delivery_delete"
	"dispatch/internal/handlers/rest/delivery_post"
	"dispatch/internal/handlers/rest/delivery_put"
	"dispatch/internal/handlers/rest/password_reset_confirm_post"
	"dispatch/internal/handlers/rest/password_reset_post"
	"dispatch/internal/handlers/rest/report_get"
	"dispatch/internal/handlers/rest/user_approval_post"
	"dispatch/internal/handlers/tasks/board_resync"
	"dispatch/internal/handlers/tasks/reset_token_cleanup"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/kafka"
	"dispatch/internal/pkg/pgnotify"

	courierRepo "dispatch/internal/repository/courier"
	customerRepo "dispatch/internal/repository/customer"
	deliveryRepo "dispatch/internal/repository/delivery"
	userRepo "dispatch/internal/repository/user"
	accountService "dispatch/internal/service/account"
	boardService "dispatch/internal/service/board"
	courierService "dispatch/internal/service/courier"
	customerService "dispatch/internal/service/customer"
	deliveryService "dispatch/internal/service/delivery"
	reportService "dispatch/internal/service/report"

	"dispatch/pkg/background"
	"dispatch/pkg/clock"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	ResyncInterval  time.Duration
	CleanupInterval time.Duration
)

// deliveriesTable - таблица, изменения которой перечитывают доску.
const deliveriesTable = "deliveries"

type Application struct {
	ServiceAccount    ServiceAccount
	ServiceCourier    ServiceCourier
	ServiceCustomer   ServiceCustomer
	ServiceDelivery   ServiceDelivery
	ServiceReport     ServiceReport
	Board             *boardService.Board
	Tokens            *auth.Tokens
	Clock             clock.Real
	BackgroundWorkers *background.Worker
}

type ServiceAccount interface {
	auth_login_post.Service
	auth_register_post.Service
	password_reset_post.Service
	password_reset_confirm_post.Service
	user_approval_post.Service
	EnsureManager(ctx context.Context, email, password, fullName string) error
}

type ServiceCourier interface {
	courier_get.Service
	couriers_get.Service
	courier_post.Service
	courier_put.Service
	courier_delete.Service
	courier_position_post.Service
}

type ServiceCustomer interface {
	customers_get.Service
	customer_get.Service
	customer_post.Service
	customer_put.Service
	customer_delete.Service
}

type ServiceDelivery interface {
	delivery_post.Service
	delivery_put.Service
	delivery_delete.Service
	deliveries_history_get.Service
}

type ServiceReport interface {
	report_get.Service
}

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
	listener *pgnotify.Listener,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		clock.New,
		provideTxManager,
		provideQuerier,
		provideResyncInterval,
		provideCleanupInterval,
		provideHasher,
		provideTokens,

		provideUserRepository,
		provideCourierRepository,
		provideCustomerRepository,
		provideDeliveryRepository,

		provideServiceCourier,
		provideServiceCustomer,
		provideServiceAccount,
		provideBoard,
		provideServiceDelivery,
		provideServiceReport,

		provideBoardResyncTask,
		provideResetTokenCleanupTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceAccount), new(*accountService.Account)),
		wire.Bind(new(ServiceCourier), new(*courierService.Courier)),
		wire.Bind(new(ServiceCustomer), new(*customerService.Customer)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceReport), new(*reportService.Report)),

		wire.Bind(new(accountService.Repository), new(*userRepo.Repository)),
		wire.Bind(new(accountService.CourierService), new(*courierService.Courier)),
		wire.Bind(new(accountService.PasswordHasher), new(*auth.Hasher)),
		wire.Bind(new(accountService.TokenIssuer), new(*auth.Tokens)),
		wire.Bind(new(accountService.ResetNotifier), new(*kafka.Producer)),
		wire.Bind(new(accountService.TxManager), new(*tx.Manager)),
		wire.Bind(new(accountService.Clock), new(clock.Real)),

		wire.Bind(new(courierService.Repository), new(*courierRepo.Repository)),
		wire.Bind(new(courierService.PositionPublisher), new(*kafka.Producer)),
		wire.Bind(new(courierService.Clock), new(clock.Real)),

		wire.Bind(new(customerService.Repository), new(*customerRepo.Repository)),

		wire.Bind(new(boardService.Store), new(*deliveryRepo.Repository)),
		wire.Bind(new(boardService.Clock), new(clock.Real)),

		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(deliveryService.CustomerService), new(*customerService.Customer)),
		wire.Bind(new(deliveryService.Board), new(*boardService.Board)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),
		wire.Bind(new(deliveryService.Clock), new(clock.Real)),

		wire.Bind(new(reportService.DeliveryLister), new(*deliveryRepo.Repository)),

		wire.Bind(new(auth.Clock), new(clock.Real)),

		wire.Bind(new(board_resync.Board), new(*boardService.Board)),
		wire.Bind(new(reset_token_cleanup.Service), new(*accountService.Account)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	CourierService *courierService.Courier
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-courier-position)
func InitializeKafkaWorkerApp(
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer *kafka.Producer,
) (*KafkaWorkerApp, error) {
	wire.Build(
		clock.New,
		provideQuerier,

		provideCourierRepository,
		provideServiceCourier,

		wire.Bind(new(courierService.Repository), new(*courierRepo.Repository)),
		wire.Bind(new(courierService.PositionPublisher), new(*kafka.Producer)),
		wire.Bind(new(courierService.Clock), new(clock.Real)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideHasher(cfg *config.Config) *auth.Hasher {
	return auth.NewHasher(cfg.Auth.BcryptCost)
}

func provideTokens(cfg *config.Config, clock auth.Clock) *auth.Tokens {
	return auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, clock)
}

func provideUserRepository(querier *querier.Querier) *userRepo.Repository {
	return userRepo.New(querier)
}

func provideCourierRepository(querier *querier.Querier) *courierRepo.Repository {
	return courierRepo.New(querier)
}

func provideCustomerRepository(querier *querier.Querier) *customerRepo.Repository {
	return customerRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideServiceCourier(
	repository courierService.Repository,
	publisher courierService.PositionPublisher,
	clock courierService.Clock,
) *courierService.Courier {
	return courierService.New(repository, publisher, clock)
}

func provideServiceCustomer(repository customerService.Repository) *customerService.Customer {
	return customerService.New(repository)
}

func provideServiceAccount(
	repository accountService.Repository,
	courierService accountService.CourierService,
	hasher accountService.PasswordHasher,
	tokens accountService.TokenIssuer,
	notifier accountService.ResetNotifier,
	txManager accountService.TxManager,
	clock accountService.Clock,
	cfg *config.Config,
) *accountService.Account {
	return accountService.New(
		repository,
		courierService,
		hasher,
		tokens,
		notifier,
		txManager,
		clock,
		cfg.Auth.ResetTokenTTL,
	)
}

// provideBoard подписывает доску на изменения таблицы доставок.
// Первичная загрузка идет прогревом board_resync.
func provideBoard(
	clock boardService.Clock,
	store boardService.Store,
	log logger.Logger,
	listener *pgnotify.Listener,
) (*boardService.Board, error) {
	b, err := boardService.New(clock, store, log)
	if err != nil {
		return nil, err
	}

	listener.Subscribe(deliveriesTable, b.HandleChange)

	return b, nil
}

func provideServiceDelivery(
	repository deliveryService.Repository,
	customerService deliveryService.CustomerService,
	board deliveryService.Board,
	txManager deliveryService.TxManager,
	clock deliveryService.Clock,
) *deliveryService.Delivery {
	return deliveryService.New(
		repository,
		customerService,
		board,
		txManager,
		clock,
	)
}

func provideServiceReport(deliveries reportService.DeliveryLister) *reportService.Report {
	return reportService.New(deliveries)
}

func provideResyncInterval(cfg *config.Config) ResyncInterval {
	return ResyncInterval(cfg.Tasks.BoardResyncInterval)
}

func provideCleanupInterval(cfg *config.Config) CleanupInterval {
	return CleanupInterval(cfg.Tasks.ResetTokenCleanupInterval)
}

func provideBoardResyncTask(
	board board_resync.Board,
	interval ResyncInterval,
) *board_resync.BoardResync {
	return board_resync.NewBoardResync(board, time.Duration(interval))
}

func provideResetTokenCleanupTask(
	log logger.Logger,
	service reset_token_cleanup.Service,
	interval CleanupInterval,
) *reset_token_cleanup.ResetTokenCleanup {
	return reset_token_cleanup.NewResetTokenCleanup(log, service, time.Duration(interval))
}

func provideTaskList(
	boardResyncTask *board_resync.BoardResync,
	resetTokenCleanupTask *reset_token_cleanup.ResetTokenCleanup,
) []background.Task {
	return []background.Task{
		boardResyncTask,
		resetTokenCleanupTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}

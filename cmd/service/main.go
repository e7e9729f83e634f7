package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "dispatch/internal/app"
	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/auth_login_post"
	"dispatch/internal/handlers/rest/auth_register_post"
	"dispatch/internal/handlers/rest/courier_delete"
	"dispatch/internal/handlers/rest/courier_earnings_get"
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
	"dispatch/internal/handlers/rest/deliveries_get"
	"dispatch/internal/handlers/rest/deliveries_history_get"
	"dispatch/internal/handlers/rest/delivery_delete"
	"dispatch/internal/handlers/rest/delivery_get"
	"dispatch/internal/handlers/rest/delivery_post"
	"dispatch/internal/handlers/rest/delivery_put"
	"dispatch/internal/handlers/rest/delivery_status_post"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/handlers/rest/password_reset_confirm_post"
	"dispatch/internal/handlers/rest/password_reset_post"
	"dispatch/internal/handlers/rest/ping_get"
	"dispatch/internal/handlers/rest/report_get"
	"dispatch/internal/handlers/rest/user_approval_post"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/grpcserver"
	"dispatch/internal/pkg/kafka"
	metrics_system "dispatch/internal/pkg/metrics"
	"dispatch/internal/pkg/middlewares/graceful_shutdown"
	"dispatch/internal/pkg/middlewares/metrics"
	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/internal/pkg/middlewares/timeout"
	"dispatch/internal/pkg/pgnotify"
	"dispatch/internal/pkg/postgres"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/token_bucket"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.App.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting dispatch application")

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно не наследуются от ctx сигналов
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, log, pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	listener := pgnotify.New(pool, log)

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// фоновые задачи и запись статусов живут до конца in-flight запросов
	businessApp, err := application.InitializeApplication(ongoingCtx, log, pool, pgxv5.DefaultCtxGetter, producer, listener, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	if cfg.Auth.ManagerEmail != "" {
		err := businessApp.ServiceAccount.EnsureManager(ctx, cfg.Auth.ManagerEmail, cfg.Auth.ManagerPassword, cfg.Auth.ManagerName)
		if err != nil {
			return fmt.Errorf("ensure manager: %w", err)
		}
	}

	listenerErr := make(chan error, 1)
	go func() {
		defer close(listenerErr)
		if err := listener.Run(ongoingCtx); err != nil && !errors.Is(err, context.Canceled) {
			listenerErr <- err
		}
	}()

	metrics_system.StartSystemMetricsCollector(ongoingCtx, 0, pool)

	healthServer := grpcserver.NewHealthServer(log)
	healthServerErr := make(chan error, 1)
	go func() {
		defer close(healthServerErr)
		if err := healthServer.ListenAndServe(ongoingCtx, cfg.GRPC.HealthPort); err != nil {
			healthServerErr <- err
		}
	}()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	healthServer.SetServing(true)
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // при выключенном pprof канал nil и кейс не срабатывает
		return fmt.Errorf("pprof server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("gRPC health server: %w", err)
	case err := <-listenerErr:
		return fmt.Errorf("change listener: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	healthServer.SetServing(false)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	// начатые переходы статусов дописываются в базу до отмены ongoingCtx
	businessApp.Board.Wait()

	stopOngoingGracefully()
	businessApp.BackgroundWorkers.Wait()

	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	app *application.Application,
	cfg *config.Config,
) http.Handler {
	location := cfg.App.Location()

	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.Server.RateLimiterQPS, token_bucket.NewBuckets(cfg.Server.RateLimiterQPS, float64(cfg.Server.RateLimiterBurst))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, app.Clock)).Methods("GET")

	router.Handle("/auth/login", auth_login_post.New(log, app.ServiceAccount)).Methods("POST")
	router.Handle("/auth/register", auth_register_post.New(log, app.ServiceAccount)).Methods("POST")
	router.Handle("/auth/password-reset", password_reset_post.New(log, app.ServiceAccount)).Methods("POST")
	router.Handle("/auth/password-reset/confirm", password_reset_confirm_post.New(log, app.ServiceAccount)).Methods("POST")

	// менеджер и курьер
	authorized := router.NewRoute().Subrouter()
	authorized.Use(auth.Middleware(app.Tokens))

	authorized.Handle("/deliveries", deliveries_get.New(log, app.Board, app.Clock)).Methods("GET")
	authorized.Handle("/deliveries/history", deliveries_history_get.New(log, app.ServiceDelivery, app.Clock)).Methods("GET")
	authorized.Handle("/delivery/{id}", delivery_get.New(log, app.Board, app.Clock)).Methods("GET")
	authorized.Handle("/delivery/{id}/status", delivery_status_post.New(log, app.Board, app.Clock)).Methods("POST")

	authorized.Handle("/courier/{id}", courier_get.New(log, app.ServiceCourier)).Methods("GET")
	authorized.Handle("/courier/{id}/position", courier_position_post.New(log, app.ServiceCourier)).Methods("POST")
	authorized.Handle("/courier/{id}/earnings/today", courier_earnings_get.New(log, app.Board, app.Clock, location)).Methods("GET")

	// только менеджер
	manager := authorized.NewRoute().Subrouter()
	manager.Use(auth.RequireRole(entities.RoleManager))

	manager.Handle("/users/{id}/approval", user_approval_post.New(log, app.ServiceAccount)).Methods("POST")

	manager.Handle("/delivery", delivery_post.New(log, app.ServiceDelivery, app.Clock)).Methods("POST")
	manager.Handle("/delivery/{id}", delivery_put.New(log, app.ServiceDelivery, app.Clock)).Methods("PUT")
	manager.Handle("/delivery/{id}", delivery_delete.New(log, app.ServiceDelivery)).Methods("DELETE")

	manager.Handle("/couriers", couriers_get.New(log, app.ServiceCourier, app.Board)).Methods("GET")
	manager.Handle("/courier", courier_post.New(log, app.ServiceCourier)).Methods("POST")
	manager.Handle("/courier", courier_put.New(log, app.ServiceCourier)).Methods("PUT")
	manager.Handle("/courier/{id}", courier_delete.New(log, app.ServiceCourier)).Methods("DELETE")

	manager.Handle("/customers", customers_get.New(log, app.ServiceCustomer)).Methods("GET")
	manager.Handle("/customer/{id}", customer_get.New(log, app.ServiceCustomer)).Methods("GET")
	manager.Handle("/customer", customer_post.New(log, app.ServiceCustomer)).Methods("POST")
	manager.Handle("/customer", customer_put.New(log, app.ServiceCustomer)).Methods("PUT")
	manager.Handle("/customer/{id}", customer_delete.New(log, app.ServiceCustomer)).Methods("DELETE")

	manager.Handle("/report", report_get.New(log, app.ServiceReport, app.Clock, location)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, nil)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"dispatch/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

// ServiceName - имя, под которым публикуется состояние сервиса.
// Пустая строка в запросе Check означает состояние сервера целиком.
const ServiceName = "dispatch"

const keepaliveMinTime = 30 * time.Second

type HealthServer struct {
	log    logger.Logger
	server *grpc.Server
	health *health.Server
}

func NewHealthServer(log logger.Logger) *HealthServer {
	srv := grpc.NewServer(
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime: keepaliveMinTime,
		}),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &HealthServer{
		log:    log.With(logger.NewField("component", "grpc-health")),
		server: srv,
		health: hs,
	}
}

// SetServing переключает статус после готовности зависимостей и при остановке.
func (s *HealthServer) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve блокируется до отмены ctx или ошибки листенера.
func (s *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("gRPC health server started", logger.NewField("addr", lis.Addr().String()))
		errCh <- s.server.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.server.GracefulStop()
		s.log.Info("gRPC health server stopped")
		return nil
	case err := <-errCh:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC health: %w", err)
	}
}

func (s *HealthServer) ListenAndServe(ctx context.Context, port string) error {
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("listen gRPC health port %s: %w", port, err)
	}
	return s.Serve(ctx, lis)
}

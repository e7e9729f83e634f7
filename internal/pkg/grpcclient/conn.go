package grpcclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	KeepaliveTime                = 5 * time.Minute
	KeepaliveTimeout             = 3 * time.Second
	KeepalivePermitWithoutStream = false

	initialInterval = 200 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 10 * time.Second
	randomization   = 0.5
	multiplier      = 2
)

var ErrNotServing = errors.New("service is not serving")

func NewConnClient(target string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                KeepaliveTime,
			Timeout:             KeepaliveTimeout,
			PermitWithoutStream: KeepalivePermitWithoutStream,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC client: %w", err)
	}
	return conn, nil
}

// Probe опрашивает health-сервис с ретраями, пока он не ответит SERVING.
func Probe(ctx context.Context, log logger.Logger, conn *grpc.ClientConn, service string) error {
	client := healthpb.NewHealthClient(conn)

	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil, // все ошибки ретраим
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.With(logger.NewField("attempt", attempt)).Debug("probing gRPC health")

		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
		if err != nil {
			return err
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
		}
		return nil
	})
	if err != nil {
		log.With(
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		).Error("gRPC health probe failed")
		return fmt.Errorf("probe %s: %w", service, err)
	}

	log.With(logger.NewField("attempts", attempt)).Info("gRPC health probe passed")
	return nil
}

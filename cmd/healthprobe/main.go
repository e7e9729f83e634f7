package main

import (
	"context"
	"flag"
	"os"
	"time"

	"dispatch/internal/pkg/grpcclient"
	"dispatch/internal/pkg/grpcserver"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
)

// healthprobe - проба для HEALTHCHECK контейнера: код выхода 0, если сервис SERVING.
func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", "localhost:50051", "gRPC health address")
	timeout := flag.Duration("timeout", 10*time.Second, "probe timeout")
	flag.Parse()

	log, err := zap_adapter.NewZapAdapter("warn")
	if err != nil {
		return 2
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, err := grpcclient.NewConnClient(*addr)
	if err != nil {
		log.Error("create connection", logger.NewField("error", err))
		return 1
	}
	defer conn.Close()

	if err := grpcclient.Probe(ctx, log, conn, grpcserver.ServiceName); err != nil {
		return 1
	}
	return 0
}

package kafka

import (
	"context"
	"fmt"
	"time"

	"dispatch/pkg/logger"
	retrierconfig "dispatch/pkg/retrier"
	"dispatch/pkg/retrier/backoff_adapter"
	"github.com/IBM/sarama"
)

const (
	clientID = "dispatch"

	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
	})

	var attempt uint64
	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		log.Info("attempting kafka connection", logger.NewField("attempt", attempt))

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}

		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close kafka connection", logger.NewField("error", err))
			}
		}()

		_, err = client.Topics()
		return err
	})
	if err != nil {
		log.Error("kafka connection failed after retries",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("failed to connect to kafka: %w", err)
	}

	log.Info("kafka connection established", logger.NewField("attempts", attempt))
	return nil
}

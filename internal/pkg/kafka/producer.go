package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/config"
	"dispatch/pkg/logger"
	"github.com/IBM/sarama"
)

// Producer публикует позиции курьеров и запросы на сброс пароля.
type Producer struct {
	log            logger.Logger
	producer       sarama.SyncProducer
	positionsTopic string
	resetsTopic    string
}

func NewProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (*Producer, error) {
	version, err := sarama.ParseKafkaVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", cfg.Sarama.Version, err)
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.ClientID = clientID
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true
	// позиции одного курьера попадают в одну партицию
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	brokers := Brokers(cfg)
	kafkaLog := log.With(logger.NewField("brokers", brokers))

	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return &Producer{
		log:            kafkaLog,
		producer:       producer,
		positionsTopic: cfg.PositionsTopic,
		resetsTopic:    cfg.ResetsTopic,
	}, nil
}

func (p *Producer) PublishPosition(ctx context.Context, position entities.CourierPosition) error {
	return p.send(ctx, p.positionsTopic, strconv.FormatInt(position.CourierID, 10), PositionMessage{
		CourierID:  position.CourierID,
		Latitude:   position.Latitude,
		Longitude:  position.Longitude,
		ReportedAt: position.ReportedAt,
	})
}

func (p *Producer) NotifyPasswordReset(ctx context.Context, reset entities.PasswordReset) error {
	return p.send(ctx, p.resetsTopic, strconv.FormatInt(reset.UserID, 10), PasswordResetMessage{
		UserID:    reset.UserID,
		Email:     reset.Email,
		Token:     reset.Token,
		ExpiresAt: reset.ExpiresAt,
	})
}

func (p *Producer) send(ctx context.Context, topic, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("send message to %s: %w", topic, err)
	}

	p.log.Debug("message sent",
		logger.NewField("topic", topic),
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

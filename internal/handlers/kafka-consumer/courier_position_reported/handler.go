package courier_position_reported

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/pkg/kafka"
	"dispatch/internal/service/courier"
	"dispatch/pkg/logger"
	"github.com/IBM/sarama"
)

type Handler struct {
	courierService           Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, courierService Service, timeout time.Duration) *Handler {
	handlerLog := log.With()

	return &Handler{
		courierService:           courierService,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("courier.position: claim closed, exiting ConsumeClaim")
				return nil
			}

			if h.messageProcessing(sess, message) {
				return nil
			}

		case <-sess.Context().Done():
			// ребаланс или остановка группы
			h.log.Info("courier.position: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing возвращает true, если ConsumeClaim нужно прервать без
// коммита сообщения. Невалидные точки пропускаются с коммитом.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event kafka.PositionMessage
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("courier.position handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("courier_id", event.CourierID),
		logger.NewField("reported_at", event.ReportedAt),
		logger.NewField("offset", message.Offset),
	)

	err = h.courierService.SavePosition(ctx, event.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("courier.position handler context cancelled, message will be reprocessed")
			return true

		case errors.Is(err, courier.ErrInvalidCourierID),
			errors.Is(err, courier.ErrInvalidPosition):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("courier.position handler invalid position")

		case errors.Is(err, courier.ErrCourierNotFound):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("courier.position handler unknown courier")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("courier.position handler failed to save position")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Debug("courier.position: saved")

	sess.MarkMessage(message, "")
	return false
}

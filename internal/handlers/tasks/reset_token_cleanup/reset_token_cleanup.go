package reset_token_cleanup

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

type ResetTokenCleanup struct {
	log      taskLogger
	service  Service
	interval time.Duration
}

func NewResetTokenCleanup(log taskLogger, service Service, interval time.Duration) *ResetTokenCleanup {
	return &ResetTokenCleanup{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (c *ResetTokenCleanup) TTL() time.Duration {
	return c.interval
}

func (c *ResetTokenCleanup) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.interval)
	defer cancel()

	rowsAffected, err := c.service.CleanupExpiredResetTokens(ctxWithTimeout)

	if rowsAffected > 0 {
		c.log.With(
			logger.NewField("cleared_tokens", rowsAffected),
		).Info("reset token cleanup")
	}

	return err
}

func (c *ResetTokenCleanup) Info() string {
	return "reset token cleanup"
}

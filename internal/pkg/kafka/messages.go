package kafka

import (
	"time"

	"dispatch/internal/entities"
)

// PositionMessage - точка курьера в топике позиций, ключ сообщения - id курьера.
type PositionMessage struct {
	CourierID  int64     `json:"courier_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reported_at"`
}

func (m PositionMessage) ToDomain() entities.CourierPosition {
	return entities.CourierPosition{
		CourierID:  m.CourierID,
		Latitude:   m.Latitude,
		Longitude:  m.Longitude,
		ReportedAt: m.ReportedAt,
	}
}

// PasswordResetMessage читает сервис уведомлений и отправляет письмо.
type PasswordResetMessage struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

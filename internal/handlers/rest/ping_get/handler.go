package ping_get

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/pkg/logger"
)

type Handler struct {
	log   handlerLogger
	clock Clock
}

func New(log handlerLogger, clock Clock) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:   handlerLog,
		clock: clock,
	}
}

// ServeHTTP отвечает pong и временем сервера: по нему клиенты
// выравнивают отображение времени в пути.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := dto.PingResponse{
		Message:    "pong",
		ServerTime: h.clock.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(res)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

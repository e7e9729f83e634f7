package password_reset_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/account"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

// ServeHTTP отвечает 202 и для неизвестного email.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.PasswordResetRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = h.service.RequestPasswordReset(r.Context(), request.Email)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidEmail):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.With(logger.NewField("error", err)).Error("request password reset")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

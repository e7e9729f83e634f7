package password_reset_confirm_post

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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.PasswordResetConfirmRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = h.service.ResetPassword(r.Context(), request.Token, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidResetToken),
			errors.Is(err, account.ErrWeakPassword):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, account.ErrResetTokenExpired):
			w.WriteHeader(http.StatusGone)
		default:
			h.log.With(logger.NewField("error", err)).Error("reset password")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package auth_register_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
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

// ServeHTTP - самостоятельная регистрация курьера. Аккаунт создается в статусе pending.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.RegisterRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	user, err := h.service.Register(r.Context(), entities.UserRegistration{
		Email:    request.Email,
		Password: request.Password,
		FullName: request.FullName,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrMissingRequiredFields),
			errors.Is(err, account.ErrInvalidEmail),
			errors.Is(err, account.ErrWeakPassword):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, account.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(logger.NewField("error", err)).Error("register")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.FromUser(*user))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

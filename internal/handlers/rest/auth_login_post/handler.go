package auth_login_post

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
	var request dto.LoginRequest
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := h.service.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrMissingRequiredFields):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, account.ErrInvalidCredentials):
			w.WriteHeader(http.StatusUnauthorized)
		case errors.Is(err, account.ErrAccountPending),
			errors.Is(err, account.ErrAccountRejected):
			w.WriteHeader(http.StatusForbidden)
		default:
			h.log.With(logger.NewField("error", err)).Error("login")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Session:   dto.FromSession(result.Session),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package user_approval_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/service/account"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
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
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request dto.ApprovalRequest
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var user *entities.User
	switch entities.ApprovalType(request.Decision) {
	case entities.ApprovalApproved:
		user, err = h.service.Approve(r.Context(), session, userID)
	case entities.ApprovalRejected:
		user, err = h.service.Reject(r.Context(), session, userID)
	default:
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if err != nil {
		switch {
		case errors.Is(err, account.ErrInvalidUserID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, account.ErrForbidden):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, account.ErrUserNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, account.ErrAlreadyDecided),
			errors.Is(err, account.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("user_id", userID),
			).Error("decide account approval")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromUser(*user))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

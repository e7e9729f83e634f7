package delivery_status_post

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/service/board"
	"dispatch/internal/service/lifecycle"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log   handlerLogger
	board Board
	clock Clock
}

func New(log handlerLogger, board Board, clock Clock) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:   handlerLog,
		board: board,
		clock: clock,
	}
}

// ServeHTTP продвигает доставку по статусам и отвечает после сохранения.
// Принимаются только переходы, которые предлагает доска; ручная правка идет через PUT.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request dto.DeliveryStatusRequest
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	next, err := entities.ParseDeliveryStatus(request.Status)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	current, err := h.board.Get(id)
	if err != nil {
		h.writeError(w, id, err)
		return
	}

	if session.Role == entities.RoleCourier &&
		(session.CourierID == nil || *session.CourierID != current.CourierID) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if current.Status == next {
		w.WriteHeader(http.StatusConflict)
		return
	}
	if !lifecycle.IsAllowedTransition(current.Status, next) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	persisted, err := h.board.AdvanceAndWait(r.Context(), id, next)
	if err != nil {
		h.writeError(w, id, err)
		return
	}

	h.log.Info("delivery status changed",
		logger.NewField("delivery_id", id),
		logger.NewField("from", current.Status.String()),
		logger.NewField("to", persisted.Status.String()),
		logger.NewField("user_id", session.UserID),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromDelivery(*persisted, h.clock.Now()))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, id int64, err error) {
	switch {
	case errors.Is(err, board.ErrDeliveryNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, board.ErrTransitionInFlight),
		errors.Is(err, board.ErrSameStatus):
		w.WriteHeader(http.StatusConflict)
	case board.IsRolledBack(err):
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("delivery_id", id),
		).Warn("delivery transition rolled back")
		w.WriteHeader(http.StatusBadGateway)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		// сохранение продолжается, итог придет в доску
		w.WriteHeader(http.StatusGatewayTimeout)
	default:
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("delivery_id", id),
		).Error("advance delivery status")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

package delivery_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/service/board"
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

	delivery, err := h.board.Get(id)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	// чужая доставка для курьера не существует
	if session.Role == entities.RoleCourier &&
		(session.CourierID == nil || *session.CourierID != delivery.CourierID) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromDelivery(*delivery, h.clock.Now()))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package deliveries_get

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/pkg/auth"
	"dispatch/pkg/logger"
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

// ServeHTTP - вид доски. Менеджер видит все группы и может отфильтровать
// завершенные по courier_id, курьер видит только свои доставки.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var courierID *int64
	if raw := r.URL.Query().Get("courier_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		courierID = &id
	}

	if session.Role == entities.RoleCourier {
		if session.CourierID == nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		courierID = session.CourierID
	}

	active := h.board.ActiveByCourier()
	if session.Role == entities.RoleCourier {
		own := make(map[int64][]entities.Delivery, 1)
		if ds, found := active[*courierID]; found {
			own[*courierID] = ds
		}
		active = own
	}

	response := dto.FromBoard(active, h.board.Finished(courierID), h.clock.Now())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package courier_earnings_get

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/pkg/auth"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

type Handler struct {
	log      handlerLogger
	board    Board
	clock    Clock
	location *time.Location
}

// New: location - часовой пояс пиццерии, его можно переопределить параметром tz.
func New(log handlerLogger, board Board, clock Clock, location *time.Location) *Handler {
	handlerLog := log.With()

	if location == nil {
		location = time.UTC
	}

	return &Handler{
		log:      handlerLog,
		board:    board,
		clock:    clock,
		location: location,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if session.Role == entities.RoleCourier &&
		(session.CourierID == nil || *session.CourierID != id) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	loc := h.location
	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	total := h.board.TodayEarnings(id, loc)

	response := dto.Earnings{
		CourierID: id,
		Date:      h.clock.Now().In(loc).Format(time.DateOnly),
		Timezone:  loc.String(),
		Total:     total.String(),
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

package courier_position_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/pkg/auth"
	"dispatch/internal/service/courier"
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

// ServeHTTP принимает координаты курьера. Запись идет асинхронно через
// очередь, поэтому ответ 202. Курьер может сообщать только свою позицию.
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

	if session.Role == entities.RoleCourier &&
		(session.CourierID == nil || *session.CourierID != id) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var report dto.PositionReport
	err = json.NewDecoder(r.Body).Decode(&report)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	position := entities.CourierPosition{
		CourierID: id,
		Latitude:  report.Latitude,
		Longitude: report.Longitude,
	}
	if report.ReportedAt != nil {
		position.ReportedAt = report.ReportedAt.UTC()
	}

	err = h.service.ReportPosition(r.Context(), position)
	if err != nil {
		switch {
		case errors.Is(err, courier.ErrInvalidCourierID),
			errors.Is(err, courier.ErrInvalidPosition):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("courier_id", id),
			).Error("report courier position")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

package courier_get

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

// ServeHTTP: менеджер видит любого курьера, курьер только свою карточку.
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

	courierEntity, err := h.service.GetCourier(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, courier.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, courier.ErrInvalidCourierID):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("courier_id", id),
			).Error("get courier")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromCourier(*courierEntity))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

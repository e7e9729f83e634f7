package delivery_delete

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/service/delivery"
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
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err = h.service.DeleteDelivery(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidDeliveryID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, delivery.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("delivery_id", id),
			).Error("delete delivery")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package customer_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/customer"
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

	res, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrInvalidCustomerID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, customer.ErrCustomerNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("customer_id", id),
			).Error("get customer")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromCustomer(*res))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package customers_get

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/handlers/rest/dto"
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
	customers, err := h.service.GetCustomers(r.Context())
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("get customers")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := make([]dto.Customer, 0, len(customers))
	for _, c := range customers {
		response = append(response, dto.FromCustomer(c))
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

package customer_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/customer"
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
	var request dto.CustomerUpdate
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	customerModify := entities.CustomerModify{
		ID:           &request.ID,
		Name:         request.Name,
		Street:       request.Street,
		Number:       request.Number,
		Neighborhood: request.Neighborhood,
		Phone:        request.Phone,
	}

	res, err := h.service.UpdateCustomer(r.Context(), customerModify)
	if err != nil {
		switch {
		case errors.Is(err, customer.ErrMissingRequiredFields),
			errors.Is(err, customer.ErrInvalidCustomerID),
			errors.Is(err, customer.ErrInvalidName),
			errors.Is(err, customer.ErrInvalidAddress),
			errors.Is(err, customer.ErrInvalidPhone):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, customer.ErrCustomerNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("update customer")
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

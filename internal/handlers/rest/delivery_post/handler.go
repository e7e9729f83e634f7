package delivery_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/customer"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	clock   Clock
}

func New(log handlerLogger, service Service, clock Clock) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
		clock:   clock,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var request dto.DeliveryCreate
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	paymentMethod, err := entities.ParsePaymentMethod(request.PaymentMethod)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	subtotal, err := entities.ParseMoney(request.Subtotal)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	deliveryFee, err := entities.ParseMoney(request.DeliveryFee)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateDelivery(r.Context(), entities.DeliveryModify{
		OrderNumber:   &request.OrderNumber,
		CustomerID:    &request.CustomerID,
		CourierID:     &request.CourierID,
		PaymentMethod: &paymentMethod,
		Subtotal:      &subtotal,
		DeliveryFee:   &deliveryFee,
	})
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrMissingRequiredFields),
			errors.Is(err, delivery.ErrInvalidOrderNumber),
			errors.Is(err, delivery.ErrInvalidCustomerID),
			errors.Is(err, delivery.ErrInvalidCourierID),
			errors.Is(err, delivery.ErrInvalidPaymentMethod),
			errors.Is(err, delivery.ErrInvalidAmount):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, customer.ErrCustomerNotFound),
			errors.Is(err, delivery.ErrCourierNotFound):
			w.WriteHeader(http.StatusUnprocessableEntity)
		default:
			h.log.With(logger.NewField("error", err)).Error("create delivery")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.FromDelivery(*created, h.clock.Now()))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

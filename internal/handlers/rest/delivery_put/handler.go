package delivery_put

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/board"
	"dispatch/internal/service/customer"
	"dispatch/internal/service/delivery"
	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
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

// ServeHTTP - ручная правка: запись заменяется целиком, правила переходов не действуют.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var request dto.DeliveryReplace
	err = json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	edited, err := toEntity(id, request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	replaced, err := h.service.ReplaceDelivery(r.Context(), edited)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidDeliveryID),
			errors.Is(err, delivery.ErrInvalidOrderNumber),
			errors.Is(err, delivery.ErrInvalidCustomerID),
			errors.Is(err, delivery.ErrInvalidCourierID),
			errors.Is(err, delivery.ErrInvalidPaymentMethod),
			errors.Is(err, delivery.ErrInvalidStatus),
			errors.Is(err, delivery.ErrInvalidAmount),
			errors.Is(err, delivery.ErrInvalidTimestamps):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, board.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, board.ErrTransitionInFlight):
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, customer.ErrCustomerNotFound),
			errors.Is(err, delivery.ErrCourierNotFound):
			w.WriteHeader(http.StatusUnprocessableEntity)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("delivery_id", id),
			).Error("replace delivery")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromDelivery(*replaced, h.clock.Now()))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func toEntity(id int64, request dto.DeliveryReplace) (entities.Delivery, error) {
	status, err := entities.ParseDeliveryStatus(request.Status)
	if err != nil {
		return entities.Delivery{}, err
	}
	paymentMethod, err := entities.ParsePaymentMethod(request.PaymentMethod)
	if err != nil {
		return entities.Delivery{}, err
	}
	subtotal, err := entities.ParseMoney(request.Subtotal)
	if err != nil {
		return entities.Delivery{}, err
	}
	deliveryFee, err := entities.ParseMoney(request.DeliveryFee)
	if err != nil {
		return entities.Delivery{}, err
	}

	edited := entities.Delivery{
		ID:              id,
		OrderNumber:     request.OrderNumber,
		CustomerID:      request.CustomerID,
		CustomerName:    request.CustomerName,
		CourierID:       request.CourierID,
		PaymentMethod:   paymentMethod,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		Status:          status,
		DepartureTime:   request.DepartureTime,
		DeliveredTime:   request.DeliveredTime,
		DurationSeconds: request.DurationSeconds,
	}
	if request.CreatedAt != nil {
		edited.CreatedAt = *request.CreatedAt
	}

	return edited, nil
}

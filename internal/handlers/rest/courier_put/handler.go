package courier_put

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/courier"
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
	var courierModifyDTO dto.CourierUpdate
	err := json.NewDecoder(r.Body).Decode(&courierModifyDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// опциональные поля передаются как есть
	courierModifyEntity := entities.CourierModify{
		ID:    &courierModifyDTO.ID,
		Name:  courierModifyDTO.Name,
		Email: courierModifyDTO.Email,
	}

	res, err := h.service.UpdateCourier(r.Context(), courierModifyEntity)
	if err != nil {
		switch {
		case errors.Is(err, courier.ErrMissingRequiredFields),
			errors.Is(err, courier.ErrInvalidCourierID),
			errors.Is(err, courier.ErrInvalidName),
			errors.Is(err, courier.ErrInvalidEmail):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, courier.ErrCourierNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, courier.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("update courier")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromCourier(*res))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

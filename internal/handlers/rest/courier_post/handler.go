package courier_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

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
	var request dto.CourierCreate
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// пустое поле считается не переданным
	courierModify := entities.CourierModify{
		Name:  nonBlank(request.Name),
		Email: nonBlank(request.Email),
	}

	id, err := h.service.CreateCourier(r.Context(), courierModify)
	if err != nil {
		switch {
		case errors.Is(err, courier.ErrMissingRequiredFields),
			errors.Is(err, courier.ErrInvalidName),
			errors.Is(err, courier.ErrInvalidEmail):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, courier.ErrConflict):
			w.WriteHeader(http.StatusConflict)
		default:
			h.log.With(
				logger.NewField("error", err),
			).Error("create courier")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.CreateResponse{
		ID: id,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Location", "/courier/"+strconv.FormatInt(id, 10))
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func nonBlank(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

package deliveries_history_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/pkg/auth"
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

// ServeHTTP - выборка из хранилища мимо доски:
// ?courier_id=10&status=delivered,cancelled&from=RFC3339&to=RFC3339
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.SessionFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if session.Role == entities.RoleCourier {
		if session.CourierID == nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		filter.CourierID = session.CourierID
	}

	deliveries, err := h.service.GetDeliveries(r.Context(), filter)
	if err != nil {
		switch {
		case errors.Is(err, delivery.ErrInvalidPeriod),
			errors.Is(err, delivery.ErrInvalidStatus):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.With(logger.NewField("error", err)).Error("list deliveries")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromDeliveries(deliveries, h.clock.Now()))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func parseFilter(query url.Values) (entities.DeliveryFilter, error) {
	var filter entities.DeliveryFilter

	if raw := query.Get("courier_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.CourierID = &id
	}

	for _, value := range query["status"] {
		for _, raw := range strings.Split(value, ",") {
			status, err := entities.ParseDeliveryStatus(strings.TrimSpace(raw))
			if err != nil {
				return filter, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.CreatedFrom = &from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, err
		}
		filter.CreatedTo = &to
	}

	return filter, nil
}

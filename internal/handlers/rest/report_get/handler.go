package report_get

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/service/report"
	"dispatch/pkg/logger"
)

var errInvalidDate = errors.New("invalid date")

type Handler struct {
	log      handlerLogger
	service  Service
	clock    Clock
	location *time.Location
}

func New(log handlerLogger, service Service, clock Clock, location *time.Location) *Handler {
	handlerLog := log.With()

	if location == nil {
		location = time.UTC
	}

	return &Handler{
		log:      handlerLog,
		service:  service,
		clock:    clock,
		location: location,
	}
}

// ServeHTTP отдает финансовый отчет за [from, to). Границы принимаются в RFC3339
// или как YYYY-MM-DD в часовом поясе пиццерии, дата в to включается целиком.
// Без параметров отчет строится за текущий день.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	today := startOfDay(h.clock.Now().In(h.location))

	from, err := h.parseBound(r.URL.Query().Get("from"), today, false)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	to, err := h.parseBound(r.URL.Query().Get("to"), today.AddDate(0, 0, 1), true)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res, err := h.service.GetReport(r.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrInvalidPeriod):
			w.WriteHeader(http.StatusBadRequest)
		default:
			h.log.With(
				logger.NewField("error", err),
				logger.NewField("from", from),
				logger.NewField("to", to),
			).Error("build report")
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.FromReport(*res))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

func (h *Handler) parseBound(raw string, fallback time.Time, inclusiveDate bool) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	day, err := time.ParseInLocation(time.DateOnly, raw, h.location)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	if inclusiveDate {
		day = day.AddDate(0, 0, 1)
	}

	return day, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

package couriers_get

import (
	"encoding/json"
	"net/http"
	"strconv"

	"dispatch/internal/handlers/rest/dto"
	"dispatch/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	board   Board
}

func New(log handlerLogger, service Service, board Board) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
		board:   board,
	}
}

// ServeHTTP отдает курьеров с их текущей загрузкой по доске.
// available=true оставляет только свободных.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := false
	if raw := r.URL.Query().Get("available"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		onlyAvailable = parsed
	}

	courierEntities, err := h.service.GetCouriers(r.Context())
	if err != nil {
		h.log.With(logger.NewField("error", err)).Error("get couriers")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	active := h.board.ActiveByCourier()

	response := make([]dto.CourierLoad, 0, len(courierEntities))
	for _, c := range courierEntities {
		load := len(active[c.ID])
		if onlyAvailable && load > 0 {
			continue
		}
		response = append(response, dto.CourierLoad{
			Courier:          dto.FromCourier(c),
			ActiveDeliveries: load,
		})
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

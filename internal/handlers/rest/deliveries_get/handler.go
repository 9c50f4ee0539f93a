package deliveries_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"tracking/internal/entities"
	"tracking/internal/handlers/rest/dto"
	"tracking/internal/service/tracker"
	"tracking/pkg/logger"
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

// ServeHTTP отдает доставки по одному из двух фильтров: ?status= или
// ?order_id=. Ровно один фильтр обязателен; order_id находит максимум одну
// доставку, но ради единообразия ответ всегда массив.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	orderID := r.URL.Query().Get("order_id")

	if (status == "") == (orderID == "") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var (
		deliveries []entities.Delivery
		err        error
	)

	if status != "" {
		deliveries, err = h.service.GetDeliveriesByStatus(r.Context(), entities.DeliveryStatusType(status))
	} else {
		var delivery *entities.Delivery
		delivery, err = h.service.GetDeliveryByOrderID(r.Context(), orderID)
		if delivery != nil {
			deliveries = []entities.Delivery{*delivery}
		}
	}

	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrInvalidStatus),
			errors.Is(err, tracker.ErrInvalidOrderID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, tracker.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.NewDeliveries(deliveries))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package delivery_post

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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateDeliveryRequest
	err := json.NewDecoder(r.Body).Decode(&createDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	deliveryModify := entities.DeliveryModify{
		OrderID:        &createDTO.OrderID,
		DestinationLat: createDTO.DestinationLat,
		DestinationLng: createDTO.DestinationLng,
	}

	delivery, err := h.service.CreateDelivery(r.Context(), deliveryModify)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrMissingRequiredFields),
			errors.Is(err, tracker.ErrInvalidOrderID),
			errors.Is(err, tracker.ErrInvalidCoordinates):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, tracker.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, tracker.ErrOrderAlreadyTracked):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(dto.NewDelivery(delivery))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

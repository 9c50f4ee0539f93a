package delivery_location_post

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
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
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var locationDTO dto.UpdateLocationRequest
	err = json.NewDecoder(r.Body).Decode(&locationDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sampleModify := entities.LocationSampleModify{
		DeliveryID:   &id,
		Lat:          locationDTO.Lat,
		Lng:          locationDTO.Lng,
		Speed:        locationDTO.Speed,
		Heading:      locationDTO.Heading,
		Accuracy:     locationDTO.Accuracy,
		BatteryLevel: locationDTO.BatteryLevel,
		Metadata:     locationDTO.Metadata,
		RecordedAt:   locationDTO.RecordedAt,
	}

	delivery, err := h.service.UpdateLocation(r.Context(), sampleModify)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrMissingRequiredFields),
			errors.Is(err, tracker.ErrInvalidCoordinates),
			errors.Is(err, tracker.ErrInvalidSpeed):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, tracker.ErrDeliveryNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, tracker.ErrDeliveryInactive):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dto.NewDelivery(delivery))
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

package delivery_simulate_post

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"tracking/pkg/logger"
)

type Handler struct {
	log       handlerLogger
	simulator Simulator
}

func New(log handlerLogger, simulator Simulator) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:       handlerLog,
		simulator: simulator,
	}
}

// ServeHTTP запускает прогон симулятора в фоне и сразу отвечает 202.
// Прогон живет дольше запроса, поэтому отвязан от его отмены; ошибки прогона
// только логируются - клиент наблюдает прогресс через WebSocket или историю.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	runCtx := context.WithoutCancel(r.Context())
	go func() {
		if err := h.simulator.Run(runCtx, id); err != nil {
			h.log.With(
				logger.NewField("delivery_id", id),
				logger.NewField("error", err),
			).Error("simulation run failed")
		}
	}()

	response := struct {
		DeliveryID int64  `json:"deliveryId"`
		Status     string `json:"status"`
	}{
		DeliveryID: id,
		Status:     "started",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}

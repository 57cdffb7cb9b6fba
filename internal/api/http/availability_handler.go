package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"library-backend/internal/logger"
	"library-backend/internal/service"
)

// AvailabilityHandler streams book availability updates to push-style
// clients over Server-Sent Events.
type AvailabilityHandler struct {
	broadcaster *service.AvailabilityBroadcaster
}

func NewAvailabilityHandler(broadcaster *service.AvailabilityBroadcaster) *AvailabilityHandler {
	return &AvailabilityHandler{broadcaster: broadcaster}
}

func (h *AvailabilityHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, updates := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	logger.Info("Client connected to availability stream", "subscriber", id)

	for {
		select {
		case <-r.Context().Done():
			logger.Info("Client disconnected from availability stream", "subscriber", id)
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			payload, err := json.Marshal(update)
			if err != nil {
				logger.Error("Failed to encode availability update", "error", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/mem"
)

// HealthHandler serves the unauthenticated status endpoints.
type HealthHandler struct {
	started time.Time
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// Root reports that the API is running.
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Task API is running",
		"version": "1.0.0",
	})
}

// Health reports liveness plus a small system readout.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	payload := map[string]interface{}{
		"status":        "UP",
		"service":       "taskdeck-api",
		"uptimeSeconds": int64(time.Since(h.started).Seconds()),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		payload["memoryUsedPercent"] = vm.UsedPercent
	} else {
		log.Warn().Err(err).Msg("Failed to read system memory stats")
	}

	respondJSON(w, http.StatusOK, payload)
}

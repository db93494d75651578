package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/taskdeck/taskdeck-be/internal/auth"
	"github.com/taskdeck/taskdeck-be/internal/models"
	"github.com/taskdeck/taskdeck-be/internal/services"
)

// ActivityHandler handles HTTP requests for the subject's activity log.
type ActivityHandler struct {
	service services.ActivityServiceProvider
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service services.ActivityServiceProvider) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetRecent handles the request to get the subject's recent activity.
func (h *ActivityHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, []models.Activity{})
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	entries, err := h.service.RecentForSubject(subject, limit)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to retrieve activity")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve activity")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

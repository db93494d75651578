package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/taskdeck/taskdeck-be/internal/auth"
	"github.com/taskdeck/taskdeck-be/internal/models"
	"github.com/taskdeck/taskdeck-be/internal/services"
)

// TaskHandler handles HTTP requests for task management. The subject is
// resolved from the request context once per handler and passed to the
// service explicitly; read-style endpoints treat an absent subject as an
// empty result set, mutations reject it.
type TaskHandler struct {
	service  services.TaskServiceProvider
	activity services.ActivityServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider, activity services.ActivityServiceProvider) *TaskHandler {
	return &TaskHandler{service: service, activity: activity}
}

// dateParam extracts and validates the required ISO date query parameter.
func dateParam(r *http.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return "", errors.New("date query parameter is required")
	}
	if _, err := time.Parse(services.DateLayout, date); err != nil {
		return "", services.ErrInvalidDate
	}
	return date, nil
}

// List handles the request to get the subject's tasks for one date.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, []models.Task{})
		return
	}

	tasks, err := h.service.ListTasks(subject, date)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to list tasks")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// Create handles the request to create a new task for the subject.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var draft models.TaskDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.CreateTask(subject, draft)
	if err != nil {
		if isValidationErr(err) {
			respondMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("subject", subject).Msg("Failed to create task")
		respondMessage(w, http.StatusInternalServerError, "Failed to create task")
		return
	}

	if err := h.activity.Record(subject, "task.create", "Created task "+task.Title, &task.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to record task activity")
	}

	respondJSON(w, http.StatusCreated, task)
}

// Update handles the request to partially update one of the subject's
// tasks.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.service.UpdateTask(subject, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			respondMessage(w, http.StatusNotFound, "Task not found or access denied")
		case isValidationErr(err):
			respondMessage(w, http.StatusBadRequest, err.Error())
		default:
			log.Error().Err(err).Str("task_id", id).Msg("Failed to update task")
			respondMessage(w, http.StatusInternalServerError, "Failed to update task")
		}
		return
	}

	if err := h.activity.Record(subject, "task.update", "Updated task "+task.Title, &task.ID); err != nil {
		log.Warn().Err(err).Msg("Failed to record task activity")
	}

	respondJSON(w, http.StatusOK, task)
}

// Delete handles the request to delete one of the subject's tasks.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteTask(subject, id); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found or access denied")
			return
		}
		log.Error().Err(err).Str("task_id", id).Msg("Failed to delete task")
		respondMessage(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}

	if err := h.activity.Record(subject, "task.delete", "Deleted a task", &id); err != nil {
		log.Warn().Err(err).Msg("Failed to record task activity")
	}

	w.WriteHeader(http.StatusNoContent)
}

// Analytics handles the request for the subject's per-day counts.
func (h *TaskHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, models.TaskAnalytics{})
		return
	}

	analytics, err := h.service.Analytics(subject, date)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to compute analytics")
		respondMessage(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}
	respondJSON(w, http.StatusOK, analytics)
}

// PendingDates handles the request for the subject's dates with
// incomplete tasks.
func (h *TaskHandler) PendingDates(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.SubjectFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, []string{})
		return
	}

	dates, err := h.service.PendingDates(subject)
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to list pending dates")
		respondMessage(w, http.StatusInternalServerError, "Failed to retrieve pending dates")
		return
	}
	respondJSON(w, http.StatusOK, dates)
}

// isValidationErr reports whether the error is a 400-class task
// validation failure.
func isValidationErr(err error) bool {
	return errors.Is(err, services.ErrTitleRequired) ||
		errors.Is(err, services.ErrDescriptionTooLong) ||
		errors.Is(err, services.ErrInvalidDate)
}

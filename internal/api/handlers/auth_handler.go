package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/taskdeck/taskdeck-be/internal/auth"
	"github.com/taskdeck/taskdeck-be/internal/services"
)

// AuthHandler handles login and registration requests.
type AuthHandler struct {
	gate     *auth.CredentialGate
	activity services.ActivityServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(gate *auth.CredentialGate, activity services.ActivityServiceProvider) *AuthHandler {
	return &AuthHandler{gate: gate, activity: activity}
}

// CredentialPayload defines the structure for login and registration
// requests. Credentials are validated once and never persisted.
type CredentialPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.gate.Login(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			respondMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			respondMessage(w, http.StatusUnauthorized, err.Error())
		default:
			log.Error().Err(err).Str("username", payload.Username).Msg("Failed to issue token")
			respondMessage(w, http.StatusInternalServerError, "Failed to generate token")
		}
		return
	}

	if err := h.activity.Record(payload.Username, "auth.login", "Signed in", nil); err != nil {
		log.Warn().Err(err).Msg("Failed to record login activity")
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Register handles registration requests. Validation only: no user
// record is stored, so the acknowledgment is all a client gets.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.gate.Register(payload.Username, payload.Password); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Registration successful",
		"username": payload.Username,
	})
}

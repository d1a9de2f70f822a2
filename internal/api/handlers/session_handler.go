package handlers

import (
	"net/http"

	"github.com/cortexai/cortex-api/internal/services"
)

// SessionHandler handles HTTP requests for mood-tracking sessions.
type SessionHandler struct {
	service services.SessionServiceProvider
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service services.SessionServiceProvider) *SessionHandler {
	return &SessionHandler{service: service}
}

// SessionPayload defines the structure for session creation requests.
type SessionPayload struct {
	Mood            *string `json:"mood"`
	DurationSeconds *int    `json:"duration_seconds"`
}

// Create logs a new session for the authenticated user.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var payload SessionPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	duration := 0
	if payload.DurationSeconds != nil {
		duration = *payload.DurationSeconds
	}

	session, err := h.service.CreateSession(r.Context(), user.ID, payload.Mood, duration)
	if err != nil {
		respondServiceError(w, r, err, "create session")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

// List returns the sessions owned by the authenticated user.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	sessions, err := h.service.ListSessions(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, r, err, "list sessions")
		return
	}
	respondJSON(w, http.StatusOK, sessions)
}

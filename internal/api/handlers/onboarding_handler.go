package handlers

import (
	"net/http"

	"github.com/cortexai/cortex-api/internal/services"
	"github.com/go-chi/chi/v5"
)

// OnboardingHandler handles HTTP requests for onboarding profiles.
type OnboardingHandler struct {
	service services.OnboardingServiceProvider
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(service services.OnboardingServiceProvider) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// OnboardingPayload defines the structure for profile upserts.
type OnboardingPayload struct {
	ClientUserID string `json:"client_user_id"`
	DisplayName  string `json:"display_name"`
	Age          *int   `json:"age"`
}

// Upsert creates the profile or replaces its display name and age.
func (h *OnboardingHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var payload OnboardingPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Age == nil {
		respondError(w, http.StatusUnprocessableEntity, "age is required")
		return
	}

	profile, err := h.service.UpsertProfile(r.Context(), payload.ClientUserID, payload.DisplayName, *payload.Age)
	if err != nil {
		respondServiceError(w, r, err, "upsert onboarding profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// Get returns the profile stored under the client_user_id path parameter.
func (h *OnboardingHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "clientUserID"))
	if err != nil {
		respondServiceError(w, r, err, "get onboarding profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

package handlers

import (
	"net/http"

	"github.com/cortexai/cortex-api/internal/auth"
	"github.com/cortexai/cortex-api/internal/models"
	"github.com/cortexai/cortex-api/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// currentUser fetches the user placed in the context by auth.RequireUser.
func currentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Str("path", r.URL.Path).Msg("Could not retrieve user from context")
		respondError(w, http.StatusUnauthorized, "Not authenticated")
	}
	return user, ok
}

// GetMe returns the authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// List returns every user. Any authenticated caller may list all accounts.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

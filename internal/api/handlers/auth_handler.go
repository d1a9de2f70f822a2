package handlers

import (
	"net/http"

	"github.com/cortexai/cortex-api/internal/auth"
	"github.com/cortexai/cortex-api/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	user, err := h.service.Register(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(w, r, err, "register user")
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("Registered user")
	respondJSON(w, http.StatusOK, user)
}

// Login exchanges form-encoded credentials (username, password,
// grant_type=password) for a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid form body")
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		respondError(w, http.StatusUnprocessableEntity, "username and password are required")
		return
	}
	if grantType := r.PostForm.Get("grant_type"); grantType != "" && grantType != "password" {
		respondError(w, http.StatusUnprocessableEntity, "grant_type must be \"password\"")
		return
	}

	token, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		log.Warn().Err(err).Str("email", username).Msg("Failed authentication attempt")
		respondServiceError(w, r, err, "log in")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: token, TokenType: auth.TokenType})
}

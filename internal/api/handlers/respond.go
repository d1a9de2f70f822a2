package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cortexai/cortex-api/internal/common"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, v any) {
	common.WriteJSON(w, status, v)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	common.WriteError(w, status, detail)
}

// respondServiceError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is logged and reported as a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		respondError(w, http.StatusBadRequest, common.Message(err, "Already exists"))
	case errors.Is(err, common.ErrValidation):
		respondError(w, http.StatusUnprocessableEntity, common.Message(err, "Invalid request"))
	case errors.Is(err, common.ErrAuthentication):
		respondError(w, http.StatusUnauthorized, common.Message(err, "Could not validate credentials"))
	case errors.Is(err, common.ErrNotFound):
		respondError(w, http.StatusNotFound, common.Message(err, "Not found"))
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to " + action)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads a JSON request body into dst, answering 422 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("Rejected request body")
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return false
	}
	return true
}

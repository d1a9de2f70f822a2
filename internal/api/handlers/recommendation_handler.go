package handlers

import (
	"net/http"
	"strings"

	"github.com/cortexai/cortex-api/internal/emotion"
	"github.com/cortexai/cortex-api/internal/recommend"
)

// RecommendPayload is the body of a recommendation request.
type RecommendPayload struct {
	UserID string `json:"user_id"`
	Mood   string `json:"mood"`
}

// Recommend returns the practice module suited to the submitted mood.
func Recommend(w http.ResponseWriter, r *http.Request) {
	var payload RecommendPayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.UserID == "" {
		respondError(w, http.StatusUnprocessableEntity, "user_id must be at least 1 character")
		return
	}
	rec, ok := recommend.ForMood(payload.Mood)
	if !ok {
		respondError(w, http.StatusUnprocessableEntity,
			"mood must be one of "+strings.Join(moods, ", "))
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

var moods = []string{emotion.Joy, emotion.Sadness, emotion.Anger, emotion.Fear, emotion.Neutral}

package handlers

import (
	"net/http"

	"github.com/cortexai/cortex-api/internal/emotion"
)

// AnalyzePayload is the body of an analysis request.
type AnalyzePayload struct {
	Text string `json:"text"`
}

// Analyze classifies the emotion of the submitted text.
func Analyze(w http.ResponseWriter, r *http.Request) {
	var payload AnalyzePayload
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Text == "" {
		respondError(w, http.StatusUnprocessableEntity, "text must be at least 1 character")
		return
	}
	respondJSON(w, http.StatusOK, emotion.Analyze(payload.Text))
}

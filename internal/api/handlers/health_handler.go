package handlers

import "net/http"

// Health is the liveness probe. It never touches the database.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

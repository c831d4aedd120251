package controller

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"skip-checkout/models"
)

// writeJSON encodes payload with status
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("❌ failed to encode response")
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

package utils

import (
	"encoding/json"
	"net/http"

	"github.com/username/wheeltracker/src/logger"
)

// SendJSONError is a helper function to send JSON formatted error responses.
func SendJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if logger.L != nil { // Check if logger is initialized
		logger.L.Warn("Sending JSON error to client", "message", message, "statusCode", statusCode)
	}
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

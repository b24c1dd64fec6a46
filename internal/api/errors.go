package api

import (
	"encoding/json"
	"net/http"
)

// Error is the JSON body of every error response.
type Error struct {
	Message string `json:"error"`
}

// Client-facing error messages.
const (
	msgPlantNotFound    = "Plant not found"
	msgResourceNotFound = "Resource not found"
	msgMethodNotAllowed = "Method not allowed"
	msgInternal         = "Internal server error"
	msgPlantDeleted     = "Plant deleted successfully"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes an {"error": message} response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Error{Message: message})
}

// writeBadRequest writes a 400 error response.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, message)
}

// writeNotFound writes a 404 error response.
func writeNotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, msgInternal)
}

// handleNotFound answers unmatched routes with a JSON 404.
func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeNotFound(w, msgResourceNotFound)
}

// handleMethodNotAllowed answers known routes hit with the wrong method.
func handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

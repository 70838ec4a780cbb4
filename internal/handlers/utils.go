// internal/handlers/utils.go
package handlers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already gone; an encode failure here is only
	// worth surfacing to the log, and the middleware records the request.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the {"message": ...} error body shared by every
// endpoint.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// internal/handlers/user.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

type createUserRequest struct {
	Username string `json:"username"`
}

// handleCreateUser registers a new user. Usernames are required but
// not unique; the integer id is the stable identity.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	user := s.store.CreateUser(req.Username)
	writeJSON(w, http.StatusCreated, user)
}

// internal/handlers/api_server.go
package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"wordchain/internal/game"
	"wordchain/internal/middleware"
)

// Server bundles the session store with the HTTP surface. Handlers
// hang off it so tests can build one around an isolated store.
type Server struct {
	logger *logrus.Logger
	store  *game.Store
}

// NewServer wires a Server around the given store.
func NewServer(logger *logrus.Logger, store *game.Store) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{logger: logger, store: store}
}

// Routes builds the full API mux, wrapped in request logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api", s.handleHealth)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)

	mux.HandleFunc("POST /api/games", s.handleCreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	mux.HandleFunc("POST /api/games/{id}/join", s.handleJoinGame)
	mux.HandleFunc("POST /api/games/{id}/start", s.handleStartGame)
	mux.HandleFunc("POST /api/games/{id}/word", s.handleSubmitWord)
	mux.HandleFunc("POST /api/games/{id}/leave", s.handleLeaveGame)

	return middleware.LogMiddleware(s.logger)(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wordchain/internal/game"
)

type createGameRequest struct {
	HostID    *int `json:"hostId"`
	IsBotGame bool `json:"isBotGame"`
}

type joinGameRequest struct {
	UserID *int `json:"userId"`
}

type submitWordRequest struct {
	UserID *int   `json:"userId"`
	Word   string `json:"word"`
}

type leaveGameRequest struct {
	UserID *int `json:"userId"`
}

// handleCreateGame opens a new lobby, seating the host (and the bot
// for solo play) immediately.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.HostID == nil {
		writeError(w, http.StatusBadRequest, "hostId is required")
		return
	}

	g, err := s.store.CreateGame(*req.HostID, req.IsBotGame)
	if err != nil {
		s.logger.WithError(err).Error("failed to create game")
		writeError(w, http.StatusInternalServerError, "could not create game")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"gameId": g.ID})
}

// handleGetGame is the poll endpoint: clients hit it on an interval to
// observe lobby fills, round changes, and the end of the game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	state, ok := s.store.GameState(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Game not found")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.UserID == nil {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	player, err := s.store.JoinGame(r.PathValue("id"), *req.UserID)
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "Game not found")
		return
	case errors.Is(err, game.ErrGameStarted):
		writeError(w, http.StatusBadRequest, "Game already started")
		return
	case errors.Is(err, game.ErrGameFull):
		writeError(w, http.StatusBadRequest, "Game full")
		return
	case err != nil:
		s.logger.WithError(err).Error("failed to join game")
		writeError(w, http.StatusInternalServerError, "could not join game")
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	if err := s.store.StartGame(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "Game not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSubmitWord(w http.ResponseWriter, r *http.Request) {
	var req submitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.UserID == nil {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	result := s.store.SubmitWord(r.PathValue("id"), *req.UserID, req.Word)
	if !result.Valid {
		writeError(w, http.StatusBadRequest, result.Message)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"points":  result.Points,
	})
}

func (s *Server) handleLeaveGame(w http.ResponseWriter, r *http.Request) {
	var req leaveGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.UserID == nil {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := s.store.LeaveGame(r.PathValue("id"), *req.UserID); err != nil {
		writeError(w, http.StatusNotFound, "Game not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

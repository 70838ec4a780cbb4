// internal/handlers/game_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordchain/internal/game"
)

func newTestHandler(t *testing.T) (http.Handler, *game.Store) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := game.NewStore(logger, game.DefaultRules())
	return NewServer(logger, store).Routes(), store
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), "body: %s", w.Body.String())
}

func createUser(t *testing.T, h http.Handler, username string) int {
	t.Helper()
	w := doRequest(t, h, "POST", "/api/users", fmt.Sprintf(`{"username":%q}`, username))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var u struct {
		ID int `json:"id"`
	}
	decodeBody(t, w, &u)
	return u.ID
}

func createGame(t *testing.T, h http.Handler, hostID int, bot bool) string {
	t.Helper()
	w := doRequest(t, h, "POST", "/api/games", fmt.Sprintf(`{"hostId":%d,"isBotGame":%v}`, hostID, bot))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp struct {
		GameID string `json:"gameId"`
	}
	decodeBody(t, w, &resp)
	require.Len(t, resp.GameID, 6)
	return resp.GameID
}

func getState(t *testing.T, h http.Handler, gameID string) game.GameState {
	t.Helper()
	w := doRequest(t, h, "GET", "/api/games/"+gameID, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var state game.GameState
	decodeBody(t, w, &state)
	return state
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	w := doRequest(t, h, "GET", "/api", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateGameValidation(t *testing.T) {
	h, _ := newTestHandler(t)

	w := doRequest(t, h, "POST", "/api/games", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, h, "POST", "/api/games", `{notjson`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGameNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	w := doRequest(t, h, "GET", "/api/games/NOSUCH", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Game not found"}`, w.Body.String())
}

func TestJoinGameErrors(t *testing.T) {
	h, _ := newTestHandler(t)
	host := createUser(t, h, "hana")
	gameID := createGame(t, h, host, false)

	// unknown game
	w := doRequest(t, h, "POST", "/api/games/NOSUCH/join", `{"userId":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// missing body field
	w = doRequest(t, h, "POST", "/api/games/"+gameID+"/join", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// fill remaining seats, then overflow
	for i := 0; i < 3; i++ {
		uid := createUser(t, h, "guest")
		w = doRequest(t, h, "POST", "/api/games/"+gameID+"/join", fmt.Sprintf(`{"userId":%d}`, uid))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	fifth := createUser(t, h, "latecomer")
	w = doRequest(t, h, "POST", "/api/games/"+gameID+"/join", fmt.Sprintf(`{"userId":%d}`, fifth))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Game full"}`, w.Body.String())
}

func TestJoinAfterStartRejected(t *testing.T) {
	h, _ := newTestHandler(t)
	host := createUser(t, h, "hana")
	guest := createUser(t, h, "miko")
	gameID := createGame(t, h, host, false)

	w := doRequest(t, h, "POST", "/api/games/"+gameID+"/start", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, "POST", "/api/games/"+gameID+"/join", fmt.Sprintf(`{"userId":%d}`, guest))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Game already started"}`, w.Body.String())
}

func TestStartGameNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	w := doRequest(t, h, "POST", "/api/games/NOSUCH/start", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLeaveGameNotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	w := doRequest(t, h, "POST", "/api/games/NOSUCH/leave", `{"userId":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestFullGameFlow walks the whole client journey: register, open a
// lobby, join, start, chain words through every round, and leave.
func TestFullGameFlow(t *testing.T) {
	h, _ := newTestHandler(t)

	host := createUser(t, h, "hana")
	guest := createUser(t, h, "miko")
	gameID := createGame(t, h, host, false)

	w := doRequest(t, h, "POST", "/api/games/"+gameID+"/join", fmt.Sprintf(`{"userId":%d}`, guest))
	require.Equal(t, http.StatusOK, w.Code)
	var player game.PlayerState
	decodeBody(t, w, &player)
	assert.Equal(t, guest, player.UserID)
	assert.Equal(t, gameID, player.GameID)

	state := getState(t, h, gameID)
	require.Len(t, state.Players, 2)
	assert.Equal(t, game.StatusWaiting, state.Status)

	w = doRequest(t, h, "POST", "/api/games/"+gameID+"/start", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	state = getState(t, h, gameID)
	require.Equal(t, game.StatusPlaying, state.Status)
	require.Equal(t, 1, state.Round)
	require.NotEmpty(t, state.CurrentWord)

	// wrong first letter is rejected with the expected message
	w = doRequest(t, h, "POST", "/api/games/"+gameID+"/word",
		fmt.Sprintf(`{"userId":%d,"word":"QUILT"}`, host))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &errBody)
	assert.Contains(t, errBody.Message, "Word must start with")

	// play out all five rounds with valid chain words
	for round := 1; round <= 5; round++ {
		state = getState(t, h, gameID)
		require.Equal(t, round, state.Round)
		last := strings.ToUpper(state.CurrentWord[len(state.CurrentWord)-1:])
		w = doRequest(t, h, "POST", "/api/games/"+gameID+"/word",
			fmt.Sprintf(`{"userId":%d,"word":%q}`, host, last+"ALE"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"success":true,"points":1}`, w.Body.String())
	}

	state = getState(t, h, gameID)
	assert.Equal(t, game.StatusFinished, state.Status)
	assert.Equal(t, 5, state.Players[0].Score)

	// submitting after the game finished is a validation failure
	w = doRequest(t, h, "POST", "/api/games/"+gameID+"/word",
		fmt.Sprintf(`{"userId":%d,"word":"EALE"}`, host))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Round not active"}`, w.Body.String())

	// both players leave; the game is gone
	for _, uid := range []int{guest, host} {
		w = doRequest(t, h, "POST", "/api/games/"+gameID+"/leave", fmt.Sprintf(`{"userId":%d}`, uid))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w = doRequest(t, h, "GET", "/api/games/"+gameID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBotGameOverHTTP(t *testing.T) {
	h, _ := newTestHandler(t)
	host := createUser(t, h, "hana")
	gameID := createGame(t, h, host, true)

	state := getState(t, h, gameID)
	require.Len(t, state.Players, 2)
	assert.True(t, state.IsBotGame)
	assert.Equal(t, -1, state.Players[1].UserID)
	assert.Equal(t, "Alice (Bot)", state.Players[1].Username)
}

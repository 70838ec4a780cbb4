// internal/game/store.go
package game

import (
	"errors"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"
)

// Core error taxonomy. Handlers map these onto HTTP statuses; the
// exact client-facing messages live at the boundary.
var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameStarted  = errors.New("game already started")
	ErrGameFull     = errors.New("game full")
	ErrCodeSpace    = errors.New("could not allocate a unique game code")
)

// codeAttempts bounds the generate-check-retry loop for game codes.
// With a 36^6 space and a handful of live games, exhausting it means
// something is deeply wrong.
const codeAttempts = 5

// User is a registered player identity. Users are created once and
// never deleted; the id is the stable key across games.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Store owns every live game and user. It is safe for concurrent use:
// the store mutex guards the game registry and the id counters, the
// user registry has its own lock, and each Game serializes its own
// mutations. Lock order is store -> game -> users; timer callbacks
// take only the game lock.
type Store struct {
	mu          sync.Mutex
	games       map[string]*Game
	playerIDSeq int

	usersMu   sync.RWMutex
	users     map[int]User
	userIDSeq int

	rules  Rules
	logger *logrus.Logger

	// OnGameEnd, if set, receives the final summary of every game that
	// completes all of its rounds. Set it before serving traffic; it is
	// invoked on its own goroutine.
	OnGameEnd func(GameResult)
}

// NewStore builds an empty in-memory session store.
func NewStore(logger *logrus.Logger, rules Rules) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		games:       make(map[string]*Game),
		playerIDSeq: 1,
		users:       make(map[int]User),
		userIDSeq:   1,
		rules:       rules,
		logger:      logger,
	}
}

// CreateUser allocates a new user with a monotonically increasing id.
// Usernames are not deduplicated.
func (s *Store) CreateUser(username string) User {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	u := User{ID: s.userIDSeq, Username: username}
	s.userIDSeq++
	s.users[u.ID] = u
	return u
}

// GetUser looks up a user by id.
func (s *Store) GetUser(id int) (User, bool) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) usernameFor(userID int) (string, bool) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	u, ok := s.users[userID]
	return u.Username, ok
}

// CreateGame allocates a fresh game in the waiting state, seats the
// host, and seats the bot when isBotGame is set. Only ErrCodeSpace can
// fail it, and only after repeated code collisions.
func (s *Store) CreateGame(hostID int, isBotGame bool) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.newCodeLocked()
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:        code,
		HostID:    hostID,
		Status:    StatusWaiting,
		IsBotGame: isBotGame,
		rules:     s.rules,
		randFloat: rand.Float64,
		logger:    s.logger.WithField("game_id", code),
		onEnd: func(result GameResult) {
			if s.OnGameEnd != nil {
				s.OnGameEnd(result)
			}
		},
	}

	// The host always takes the first seat.
	g.Players = append(g.Players, &Player{ID: s.nextPlayerIDLocked(), Kind: KindHuman, UserID: hostID})
	if isBotGame {
		g.Players = append(g.Players, &Player{ID: s.nextPlayerIDLocked(), Kind: KindBot})
	}

	s.games[code] = g
	s.logger.WithFields(logrus.Fields{
		"game_id": code,
		"host_id": hostID,
		"bot":     isBotGame,
	}).Info("game created")
	return g, nil
}

func (s *Store) newCodeLocked() (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := newGameCode()
		if _, taken := s.games[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpace
}

func (s *Store) nextPlayerIDLocked() int {
	id := s.playerIDSeq
	s.playerIDSeq++
	return id
}

// GetGame fetches the live aggregate by code.
func (s *Store) GetGame(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	return g, ok
}

// GameState returns the composed read view for polling clients, with
// each seat's username resolved from the user registry.
func (s *Store) GameState(id string) (GameState, bool) {
	g, ok := s.GetGame(id)
	if !ok {
		return GameState{}, false
	}
	return g.State(s.usernameFor), true
}

// JoinGame seats userID in a waiting game. Joining a game you already
// sit in returns the existing seat unchanged.
func (s *Store) JoinGame(gameID string, userID int) (PlayerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return PlayerState{}, ErrGameNotFound
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Status != StatusWaiting {
		return PlayerState{}, ErrGameStarted
	}
	if len(g.Players) >= g.rules.MaxPlayers {
		return PlayerState{}, ErrGameFull
	}
	if p := g.findPlayerLocked(userID); p != nil {
		return g.playerStateLocked(p, s.usernameFor), nil
	}

	p := &Player{ID: s.nextPlayerIDLocked(), Kind: KindHuman, UserID: userID}
	g.Players = append(g.Players, p)
	g.logger.WithField("user_id", userID).Info("player joined")
	return g.playerStateLocked(p, s.usernameFor), nil
}

// StartGame begins round one of the identified game.
func (s *Store) StartGame(gameID string) error {
	g, ok := s.GetGame(gameID)
	if !ok {
		return ErrGameNotFound
	}
	g.Start()
	return nil
}

// SubmitWord routes a submission to the game. A missing game is a
// validation result rather than an error, mirroring the rest of the
// submission outcomes.
func (s *Store) SubmitWord(gameID string, userID int, word string) SubmitResult {
	g, ok := s.GetGame(gameID)
	if !ok {
		return SubmitResult{Valid: false, Message: "Game not found"}
	}
	return g.SubmitWord(userID, word)
}

// LeaveGame removes the user's seat. A missing player is a no-op.
// Removing the last seat deletes the game and stops its timers,
// garbage-collecting abandoned sessions.
func (s *Store) LeaveGame(gameID string, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return ErrGameNotFound
	}

	g.mu.Lock()
	removed, empty := g.removePlayerLocked(userID)
	if empty {
		g.stopTimersLocked()
	}
	g.mu.Unlock()

	if removed {
		g.logger.WithField("user_id", userID).Info("player left")
	}
	if empty {
		delete(s.games, gameID)
		g.logger.Info("game deleted, roster empty")
	}
	return nil
}

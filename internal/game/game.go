// internal/game/game.go
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Status is the lifecycle state of a game.
type Status string

const (
	StatusWaiting Status = "waiting"
	// StatusCountdown is presentational only: clients infer it from the
	// waiting -> playing transition. The engine never assigns it.
	StatusCountdown Status = "countdown"
	StatusPlaying   Status = "playing"
	StatusFinished  Status = "finished"
)

// Bot behavior: the bot wakes once per round at a random instant inside
// the window where 1-3 seconds remain, and acts 70% of the time.
const (
	botWindowMin  = 1 * time.Second
	botWindowMax  = 3 * time.Second
	botSkipChance = 0.3
	botWordSuffix = "BOT"
)

// SubmitResult reports the outcome of a word submission. Rule
// violations are results, not errors; the HTTP layer surfaces Message
// with a 400.
type SubmitResult struct {
	Valid   bool
	Message string
	Points  int
}

// GameResult is the terminal summary handed to the store's OnGameEnd
// callback once a game finishes all of its rounds.
type GameResult struct {
	GameID     string        `json:"game_id"`
	Rounds     int           `json:"rounds"`
	Scores     []PlayerScore `json:"scores"`
	FinishedAt time.Time     `json:"finished_at"`
}

// PlayerScore is one seat's final tally inside a GameResult.
type PlayerScore struct {
	PlayerID int `json:"player_id"`
	UserID   int `json:"user_id"`
	Score    int `json:"score"`
}

// GameState is the composed read view returned to polling clients.
type GameState struct {
	ID          string        `json:"id"`
	HostID      int           `json:"hostId"`
	Status      Status        `json:"status"`
	Round       int           `json:"round"`
	CurrentWord string        `json:"currentWord"`
	RoundEndsAt *time.Time    `json:"roundEndsAt"`
	IsBotGame   bool          `json:"isBotGame"`
	Players     []PlayerState `json:"players"`
}

// Game holds the entire state of one match. All mutation happens under
// mu, which is what makes the first-valid-submit-ends-the-round rule
// atomic. Round expiry and the bot run on per-game timers instead of
// piggybacking on client polls.
type Game struct {
	mu sync.Mutex

	ID          string
	HostID      int
	Status      Status
	Round       int
	CurrentWord string
	RoundEndsAt *time.Time
	IsBotGame   bool

	Players []*Player

	rules Rules

	roundTimer *time.Timer
	botTimer   *time.Timer

	// onEnd fires once, when the game transitions to finished.
	onEnd func(GameResult)

	// randFloat is swappable in tests to pin bot behavior.
	randFloat func() float64

	logger *logrus.Entry
}

// Start moves the game into the playing state: round one, a random
// starter word, a fresh deadline, and cleared submission flags.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	g.Status = StatusPlaying
	g.Round = 1
	g.CurrentWord = randomStarterWord()
	ends := now.Add(g.rules.RoundDuration)
	g.RoundEndsAt = &ends
	g.resetSubmissionsLocked()
	g.scheduleTimersLocked()

	g.logger.WithFields(logrus.Fields{
		"word":    g.CurrentWord,
		"players": len(g.Players),
	}).Info("game started")
}

// SubmitWord applies the chain rule and, on the first valid submission
// of the round, scores a point and immediately advances the round with
// the submitted word as the new chain word.
func (g *Game) SubmitWord(userID int, word string) SubmitResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitLocked(userID, word, time.Now())
}

func (g *Game) submitLocked(userID int, word string, now time.Time) SubmitResult {
	if g.Status != StatusPlaying {
		return SubmitResult{Valid: false, Message: "Round not active"}
	}

	last := lastLetter(g.CurrentWord)
	first := firstLetter(strings.TrimSpace(word))
	if first == "" || first != last {
		return SubmitResult{Valid: false, Message: fmt.Sprintf("Word must start with '%s'", last)}
	}

	p := g.findPlayerLocked(userID)
	if p == nil || p.HasSubmitted {
		return SubmitResult{Valid: false, Message: "Already submitted"}
	}

	p.Score++
	p.HasSubmitted = true

	g.logger.WithFields(logrus.Fields{
		"round":   g.Round,
		"user_id": userID,
		"word":    word,
	}).Debug("word accepted")

	g.endRoundLocked(strings.ToUpper(strings.TrimSpace(word)), now)
	return SubmitResult{Valid: true, Points: 1}
}

// State composes the read view. The read path doubles as a defensive
// clock tick: an expired round is closed out before the snapshot is
// taken, so a wedged timer can never stall a game its clients are
// still watching.
func (g *Game) State(resolve func(userID int) (string, bool)) GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if g.Status == StatusPlaying && g.RoundEndsAt != nil && now.After(*g.RoundEndsAt) {
		g.endRoundLocked("", now)
	}

	state := GameState{
		ID:          g.ID,
		HostID:      g.HostID,
		Status:      g.Status,
		Round:       g.Round,
		CurrentWord: g.CurrentWord,
		RoundEndsAt: g.RoundEndsAt,
		IsBotGame:   g.IsBotGame,
		Players:     make([]PlayerState, 0, len(g.Players)),
	}
	for _, p := range g.Players {
		state.Players = append(state.Players, g.playerStateLocked(p, resolve))
	}
	return state
}

func (g *Game) playerStateLocked(p *Player, resolve func(userID int) (string, bool)) PlayerState {
	username := BotDisplayName
	if p.Kind == KindHuman {
		var ok bool
		if username, ok = resolve(p.UserID); !ok {
			username = "Unknown"
		}
	}
	return PlayerState{
		ID:           p.ID,
		GameID:       g.ID,
		UserID:       p.wireUserID(),
		Score:        p.Score,
		HasSubmitted: p.HasSubmitted,
		Username:     username,
	}
}

// endRoundLocked closes the current round. After the final round the
// game is finished, terminally; otherwise the round advances with
// nextWord (or a random fallback) as the new chain word.
func (g *Game) endRoundLocked(nextWord string, now time.Time) {
	g.stopTimersLocked()

	if g.Round >= g.rules.TotalRounds {
		g.Status = StatusFinished
		g.RoundEndsAt = nil
		g.logger.Info("game finished")
		if g.onEnd != nil {
			go g.onEnd(g.resultLocked(now))
		}
		return
	}

	g.Round++
	if nextWord == "" {
		nextWord = randomFallbackWord()
	}
	g.CurrentWord = nextWord
	ends := now.Add(g.rules.RoundDuration)
	g.RoundEndsAt = &ends
	g.resetSubmissionsLocked()
	g.scheduleTimersLocked()

	g.logger.WithFields(logrus.Fields{
		"round": g.Round,
		"word":  g.CurrentWord,
	}).Debug("round advanced")
}

func (g *Game) resultLocked(now time.Time) GameResult {
	result := GameResult{
		GameID:     g.ID,
		Rounds:     g.Round,
		FinishedAt: now,
		Scores:     make([]PlayerScore, 0, len(g.Players)),
	}
	for _, p := range g.Players {
		result.Scores = append(result.Scores, PlayerScore{
			PlayerID: p.ID,
			UserID:   p.wireUserID(),
			Score:    p.Score,
		})
	}
	return result
}

// scheduleTimersLocked arms the round-deadline timer and, for bot
// games, the bot's single wakeup for this round. Both callbacks
// re-check the round number under the lock, so a stale timer firing
// after a submit already advanced the round is a no-op.
func (g *Game) scheduleTimersLocked() {
	round := g.Round
	g.roundTimer = time.AfterFunc(g.rules.RoundDuration, func() {
		g.handleRoundDeadline(round)
	})

	if !g.IsBotGame {
		return
	}
	remaining := botWindowMin + time.Duration(rand.Int63n(int64(botWindowMax-botWindowMin)))
	delay := g.rules.RoundDuration - remaining
	if delay <= 0 {
		// Round shorter than the bot's reaction window; the bot sits out.
		return
	}
	g.botTimer = time.AfterFunc(delay, func() {
		g.handleBotWakeup(round)
	})
}

func (g *Game) stopTimersLocked() {
	if g.roundTimer != nil {
		g.roundTimer.Stop()
		g.roundTimer = nil
	}
	if g.botTimer != nil {
		g.botTimer.Stop()
		g.botTimer = nil
	}
}

func (g *Game) handleRoundDeadline(expectedRound int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Status != StatusPlaying || g.Round != expectedRound {
		return
	}
	g.logger.WithField("round", expectedRound).Debug("round expired")
	g.endRoundLocked("", time.Now())
}

func (g *Game) handleBotWakeup(expectedRound int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tryBotMoveLocked(expectedRound, time.Now())
}

// tryBotMoveLocked makes the bot's opportunistic move: a trivially
// valid word built from the current chain letter, submitted through
// the same path as a human word.
func (g *Game) tryBotMoveLocked(expectedRound int, now time.Time) {
	if g.Status != StatusPlaying || g.Round != expectedRound || !g.IsBotGame {
		return
	}
	bot := g.findPlayerLocked(BotUserID)
	if bot == nil || bot.HasSubmitted {
		return
	}
	if g.randFloat() < botSkipChance {
		return
	}
	word := lastLetter(g.CurrentWord) + botWordSuffix
	if res := g.submitLocked(BotUserID, word, now); res.Valid {
		g.logger.WithFields(logrus.Fields{
			"round": expectedRound,
			"word":  word,
		}).Debug("bot submitted")
	}
}

// findPlayerLocked matches seats by wire user id, so BotUserID finds
// the bot seat.
func (g *Game) findPlayerLocked(userID int) *Player {
	for _, p := range g.Players {
		if p.wireUserID() == userID {
			return p
		}
	}
	return nil
}

func (g *Game) resetSubmissionsLocked() {
	for _, p := range g.Players {
		p.HasSubmitted = false
	}
}

// removePlayerLocked drops the seat held by userID. It reports whether
// a seat was removed and whether the roster is now empty.
func (g *Game) removePlayerLocked(userID int) (removed, empty bool) {
	for i, p := range g.Players {
		if p.wireUserID() == userID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			removed = true
			break
		}
	}
	return removed, len(g.Players) == 0
}

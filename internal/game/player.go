// internal/game/player.go
package game

// PlayerKind distinguishes human seats from the built-in bot.
type PlayerKind int

const (
	KindHuman PlayerKind = iota
	KindBot
)

// BotUserID is the sentinel user id the wire format uses for the bot
// seat. Internally the kind is tracked explicitly; the sentinel exists
// only at the JSON boundary.
const BotUserID = -1

// BotDisplayName is the fixed username shown for the bot seat.
const BotDisplayName = "Alice (Bot)"

// Player is one seat in a game: either a user or the bot.
type Player struct {
	ID           int
	Kind         PlayerKind
	UserID       int // meaningful only when Kind == KindHuman
	Score        int
	HasSubmitted bool
}

// wireUserID is the user id as exposed by the API: the real id for
// humans, -1 for the bot.
func (p *Player) wireUserID() int {
	if p.Kind == KindBot {
		return BotUserID
	}
	return p.UserID
}

// PlayerState is the API view of a seat, annotated with a display
// username resolved from the user registry.
type PlayerState struct {
	ID           int    `json:"id"`
	GameID       string `json:"gameId"`
	UserID       int    `json:"userId"`
	Score        int    `json:"score"`
	HasSubmitted bool   `json:"hasSubmitted"`
	Username     string `json:"username"`
}

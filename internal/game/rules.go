// internal/game/rules.go
package game

import "time"

// Rules holds the fixed parameters of a match. A Store hands the same
// Rules to every game it creates, so tests can shrink the round timer
// without touching package state.
type Rules struct {
	MaxPlayers    int
	TotalRounds   int
	RoundDuration time.Duration
}

// DefaultRules returns the standard party settings: four seats, five
// rounds, five seconds per round.
func DefaultRules() Rules {
	return Rules{
		MaxPlayers:    4,
		TotalRounds:   5,
		RoundDuration: 5 * time.Second,
	}
}

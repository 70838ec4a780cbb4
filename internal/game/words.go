// internal/game/words.go
package game

import (
	"math/rand"
	"strings"
)

// starterWords seed round one of every match.
var starterWords = []string{"APPLE", "TIGER", "RIVER", "CLOUD", "MUSIC"}

// fallbackWords restart the chain when a round expires with no valid
// submission to carry over.
var fallbackWords = []string{"STORM", "BREAD", "NIGHT", "FLAME"}

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 6
)

func randomStarterWord() string {
	return starterWords[rand.Intn(len(starterWords))]
}

func randomFallbackWord() string {
	return fallbackWords[rand.Intn(len(fallbackWords))]
}

// newGameCode returns a 6-character uppercase alphanumeric code.
// Uniqueness is the caller's problem; the Store checks its registry
// and retries.
func newGameCode() string {
	b := make([]byte, codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}

// firstLetter returns the uppercased first rune of s, or "" if s is empty.
func firstLetter(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r[0]))
}

// lastLetter returns the uppercased final rune of s, or "" if s is empty.
func lastLetter(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return ""
	}
	return strings.ToUpper(string(r[len(r)-1]))
}

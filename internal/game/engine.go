// internal/game/engine.go
//
// Session engine for a single Absurdle game.
// Responsibilities:
//   - Create new games from a raw token list and a word length.
//   - Apply guesses: validate length, let SelectPattern pick the
//     adversarial pattern, replace the candidate set, extend the transcript.
//   - Report state: playing until the last pattern is all exact.
//
// Notes:
//   - Dictionary filtering is words.Prune; an empty result is fatal.
//   - A Game is owned by one driver at a time; the server's store
//     serializes access per session.
//   - randomID() is a compact hex identifier for correlating server state.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/robalobadob/absurdle/internal/words"
)

// State values reported to drivers.
const (
	StatePlaying = "playing"
	StateWon     = "won"
)

// New constructs a game over the tokens of exactly length letters.
// Fails with words.ErrInvalidWordLength for length < 1 and with
// ErrEmptyCandidateSet when no token has that length.
func New(tokens []string, length int, dictionary string) (*Game, error) {
	set, err := words.Prune(tokens, length)
	if err != nil {
		return nil, err
	}
	if set.Cardinality() == 0 {
		return nil, fmt.Errorf("%w: no %d-letter words in %q", ErrEmptyCandidateSet, length, dictionary)
	}
	return &Game{
		ID:         randomID(),
		Dictionary: dictionary,
		Length:     length,
		Candidates: set,
		Guesses:    []string{},
		Patterns:   []Pattern{},
	}, nil
}

// ApplyGuess answers guess with the pattern that keeps the most candidates
// alive and narrows the candidate set to that block.
// A rejected guess leaves the game unchanged.
func (g *Game) ApplyGuess(guess string) (Pattern, error) {
	if g.Finished() {
		return "", ErrGameFinished
	}
	p, next, err := SelectPattern(guess, g.Candidates, g.Length)
	if err != nil {
		return "", err
	}
	g.Candidates = next
	g.Guesses = append(g.Guesses, guess)
	g.Patterns = append(g.Patterns, p)
	return p, nil
}

// Finished reports whether the word has been revealed.
func (g *Game) Finished() bool { return IsFinished(g.Patterns) }

// State is StateWon once finished, StatePlaying before.
func (g *Game) State() string {
	if g.Finished() {
		return StateWon
	}
	return StatePlaying
}

// Turns is the number of accepted guesses.
func (g *Game) Turns() int { return len(g.Patterns) }

// Remaining is the size of the live candidate set.
func (g *Game) Remaining() int { return g.Candidates.Cardinality() }

// Summary is the end-of-game report: turn count and transcript.
type Summary struct {
	Turns    int
	Finished bool
	Guesses  []string
	Patterns []Pattern
}

// Summary snapshots the transcript.
func (g *Game) Summary() Summary {
	return Summary{
		Turns:    g.Turns(),
		Finished: g.Finished(),
		Guesses:  append([]string(nil), g.Guesses...),
		Patterns: append([]Pattern(nil), g.Patterns...),
	}
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// internal/game/types.go
//
// Core type definitions for the Absurdle engine.
// Defines:
//   - Mark: per-letter feedback (exact/partial/absent).
//   - Pattern: one Mark per letter, usable as a map key and ordered.
//   - Candidates: the live set of words still consistent with all feedback.
//   - Game: state for a single in-progress or finished session.

package game

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// Mark represents the evaluation result for a single letter of a guess.
// The byte values order as absent < partial < exact, which is also the
// order the emoji glyphs sort in.
type Mark byte

const (
	MarkAbsent  Mark = '0'
	MarkPartial Mark = '1'
	MarkExact   Mark = '2'
)

// String returns the JSON-facing name of the mark.
func (m Mark) String() string {
	switch m {
	case MarkExact:
		return "exact"
	case MarkPartial:
		return "partial"
	case MarkAbsent:
		return "absent"
	}
	return "unknown"
}

// MarshalText lets []Mark encode as ["exact","absent",...].
func (m Mark) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText accepts the names produced by MarshalText.
func (m *Mark) UnmarshalText(b []byte) error {
	switch string(b) {
	case "exact":
		*m = MarkExact
	case "partial":
		*m = MarkPartial
	case "absent":
		*m = MarkAbsent
	default:
		return fmt.Errorf("game: unknown mark %q", b)
	}
	return nil
}

// Glyphs for rendered rows.
const (
	GlyphExact   = "🟩"
	GlyphPartial = "🟨"
	GlyphAbsent  = "⬜"
)

// Pattern is the feedback for one guess, one Mark byte per letter.
// Comparing two Patterns as strings gives the tie-break order used by
// SelectPattern.
type Pattern string

// Marks splits the pattern into its marks.
func (p Pattern) Marks() []Mark {
	out := make([]Mark, len(p))
	for i := 0; i < len(p); i++ {
		out[i] = Mark(p[i])
	}
	return out
}

// Solved reports whether every mark is MarkExact.
func (p Pattern) Solved() bool {
	if p == "" {
		return false
	}
	for i := 0; i < len(p); i++ {
		if Mark(p[i]) != MarkExact {
			return false
		}
	}
	return true
}

// Emoji renders the pattern with the 🟩/🟨/⬜ glyphs.
func (p Pattern) Emoji() string {
	var b strings.Builder
	for i := 0; i < len(p); i++ {
		switch Mark(p[i]) {
		case MarkExact:
			b.WriteString(GlyphExact)
		case MarkPartial:
			b.WriteString(GlyphPartial)
		default:
			b.WriteString(GlyphAbsent)
		}
	}
	return b.String()
}

// String is the emoji form, so patterns print the way the game shows them.
func (p Pattern) String() string { return p.Emoji() }

// Candidates is the set of words still consistent with every pattern
// revealed so far.
type Candidates = mapset.Set[string]

// NewCandidates builds a candidate set from words.
func NewCandidates(words ...string) Candidates {
	return mapset.NewThreadUnsafeSet[string](words...)
}

// Game holds the state of a single Absurdle session.
type Game struct {
	ID         string     // Unique game identifier (random hex string).
	Dictionary string     // Name of the dictionary the session was built from.
	Length     int        // Word length L fixed for the session.
	Candidates Candidates // Words still consistent with every pattern.
	Guesses    []string   // Guesses made so far, in order.
	Patterns   []Pattern  // Transcript; Patterns[i] answers Guesses[i].
}

// Clone returns a copy of g that shares no mutable state with it.
func (g *Game) Clone() *Game {
	c := *g
	if g.Candidates != nil {
		c.Candidates = g.Candidates.Clone()
	}
	c.Guesses = append([]string(nil), g.Guesses...)
	c.Patterns = append([]Pattern(nil), g.Patterns...)
	return &c
}

package game

import (
	"fmt"
	"unicode/utf8"
)

// Partition groups candidates by the pattern each one produces against
// guess. Every candidate lands in exactly one block.
func Partition(guess string, candidates Candidates) (map[Pattern]Candidates, error) {
	blocks := make(map[Pattern]Candidates)
	var err error
	candidates.Each(func(w string) bool {
		var p Pattern
		p, err = ComputePattern(w, guess)
		if err != nil {
			err = fmt.Errorf("score %q against %q: %w", guess, w, err)
			return true // stop
		}
		b, ok := blocks[p]
		if !ok {
			b = NewCandidates()
			blocks[p] = b
		}
		b.Add(w)
		return false
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// SelectPattern picks the adversarial answer to guess: the pattern whose
// block of candidates is largest, ties going to the smallest pattern.
// It returns that pattern and the block as a new candidate set; the input
// set is left untouched.
//
// The all-exact block holds at most the guess itself, so it only wins once
// no other block is larger.
func SelectPattern(guess string, candidates Candidates, length int) (Pattern, Candidates, error) {
	if candidates == nil || candidates.Cardinality() == 0 {
		return "", nil, ErrEmptyCandidateSet
	}
	if utf8.RuneCountInString(guess) != length {
		return "", nil, fmt.Errorf("%w: got %d letters, want %d",
			ErrGuessLengthMismatch, utf8.RuneCountInString(guess), length)
	}

	blocks, err := Partition(guess, candidates)
	if err != nil {
		return "", nil, err
	}

	var (
		best     Pattern
		bestSize int
	)
	for p, b := range blocks {
		n := b.Cardinality()
		if n > bestSize || (n == bestSize && p < best) {
			best, bestSize = p, n
		}
	}
	return best, blocks[best], nil
}

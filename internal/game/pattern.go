package game

// ComputePattern scores guess against candidate with the two-pass
// Wordle algorithm.
//
// Pass 1:
//   - Mark exact matches and consume those letters from the candidate's
//     letter counts.
//
// Pass 2:
//   - For each non-exact guess letter: if the candidate still has an
//     unconsumed copy of it, mark partial and consume it; otherwise absent.
//
// Pass 1 must finish before pass 2 so a repeated letter is never credited
// more often than the candidate contains it.
// Lengths are compared in runes; letters are compared as-is (no case
// folding).
func ComputePattern(candidate, guess string) (Pattern, error) {
	cand := []rune(candidate)
	g := []rune(guess)
	if len(cand) != len(g) {
		return "", ErrLengthMismatch
	}

	counts := make(map[rune]int, len(cand))
	for _, r := range cand {
		counts[r]++
	}

	res := make([]byte, len(g))

	// First pass: exact matches.
	for i := range g {
		if g[i] == cand[i] {
			res[i] = byte(MarkExact)
			counts[g[i]]--
		}
	}

	// Second pass: partial/absent for the rest.
	for i := range g {
		if res[i] == byte(MarkExact) {
			continue
		}
		if counts[g[i]] > 0 {
			res[i] = byte(MarkPartial)
			counts[g[i]]--
		} else {
			res[i] = byte(MarkAbsent)
		}
	}
	return Pattern(res), nil
}

// IsFinished reports whether the transcript ends with an all-exact pattern.
func IsFinished(patterns []Pattern) bool {
	if len(patterns) == 0 {
		return false
	}
	return patterns[len(patterns)-1].Solved()
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fiveLetter = []string{
	"about", "above", "actor", "adopt", "after", "again", "alarm", "album",
	"apple", "arise", "beach", "bread", "brown", "crane", "crash", "cream",
	"erase", "eerie", "llama", "slate", "speed", "trace", "water", "world",
}

func TestPartitionCoversEveryCandidateOnce(t *testing.T) {
	cands := NewCandidates(fiveLetter...)
	blocks, err := Partition("crane", cands)
	require.NoError(t, err)

	seen := NewCandidates()
	for p, b := range blocks {
		require.Len(t, p, 5)
		b.Each(func(w string) bool {
			assert.False(t, seen.Contains(w), "%q in two blocks", w)
			seen.Add(w)
			got, err := ComputePattern(w, "crane")
			require.NoError(t, err)
			assert.Equal(t, p, got)
			return false
		})
	}
	assert.True(t, seen.Equal(cands))
}

func TestSelectPatternTerminationScenario(t *testing.T) {
	cands := NewCandidates("abc", "abd", "xyz")

	// Every block is a singleton; the smallest pattern wins, keeping the
	// game going instead of conceding with the all-exact block.
	p, next, err := SelectPattern("abc", cands, 3)
	require.NoError(t, err)
	assert.Equal(t, Pattern("000"), p)
	assert.True(t, next.Equal(NewCandidates("xyz")))

	p, next, err = SelectPattern("xyz", next, 3)
	require.NoError(t, err)
	assert.True(t, p.Solved())
	assert.True(t, next.Equal(NewCandidates("xyz")))
}

func TestSelectPatternPrefersLargerBlockOverExact(t *testing.T) {
	cands := NewCandidates("abc", "abd", "abe")

	p, next, err := SelectPattern("abc", cands, 3)
	require.NoError(t, err)
	assert.Equal(t, Pattern("220"), p)
	assert.True(t, next.Equal(NewCandidates("abd", "abe")))

	// 220 and 222 both hold one word; 220 sorts first.
	p, next, err = SelectPattern("abd", next, 3)
	require.NoError(t, err)
	assert.Equal(t, Pattern("220"), p)
	assert.True(t, next.Equal(NewCandidates("abe")))

	p, _, err = SelectPattern("abe", next, 3)
	require.NoError(t, err)
	assert.True(t, p.Solved())
}

func TestSelectPatternTieBreakIsSmallestPattern(t *testing.T) {
	cands := NewCandidates("abd", "abe", "xyd", "xye")
	// "abc" splits these into 220:{abd,abe} and 000:{xyd,xye}.
	p, next, err := SelectPattern("abc", cands, 3)
	require.NoError(t, err)
	assert.Equal(t, Pattern("000"), p)
	assert.True(t, next.Equal(NewCandidates("xyd", "xye")))
}

func TestSelectPatternSingleCandidate(t *testing.T) {
	p, next, err := SelectPattern("speed", NewCandidates("speed"), 5)
	require.NoError(t, err)
	assert.True(t, p.Solved())
	assert.True(t, IsFinished([]Pattern{p}))
	assert.Equal(t, 1, next.Cardinality())
}

func TestSelectPatternSubsetAndNoMutation(t *testing.T) {
	for _, guess := range []string{"crane", "speed", "zzzzz", "eerie", "llama"} {
		cands := NewCandidates(fiveLetter...)
		before := cands.Clone()

		_, next, err := SelectPattern(guess, cands, 5)
		require.NoError(t, err)
		assert.Positive(t, next.Cardinality(), guess)
		assert.True(t, next.IsSubset(cands), guess)
		assert.True(t, cands.Equal(before), "input mutated for %q", guess)
	}
}

func TestSelectPatternMonotonicShrink(t *testing.T) {
	cands := NewCandidates(fiveLetter...)
	size := cands.Cardinality()
	for _, guess := range []string{"crane", "slate", "about", "world", "zzzzz", "erase"} {
		_, next, err := SelectPattern(guess, cands, 5)
		require.NoError(t, err)
		assert.LessOrEqual(t, next.Cardinality(), size)
		assert.True(t, next.IsSubset(cands))
		cands, size = next, next.Cardinality()
	}
}

func TestSelectPatternDeterministic(t *testing.T) {
	cands := NewCandidates(fiveLetter...)
	p1, s1, err := SelectPattern("arise", cands, 5)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		p2, s2, err := SelectPattern("arise", NewCandidates(fiveLetter...), 5)
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
		assert.True(t, s1.Equal(s2))
	}
}

func TestSelectPatternErrors(t *testing.T) {
	_, _, err := SelectPattern("abc", NewCandidates(), 3)
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)

	_, _, err = SelectPattern("abc", nil, 3)
	assert.ErrorIs(t, err, ErrEmptyCandidateSet)

	_, _, err = SelectPattern("abcd", NewCandidates("abc"), 3)
	assert.ErrorIs(t, err, ErrGuessLengthMismatch)

	// A candidate of the wrong length is an internal invariant violation.
	_, _, err = SelectPattern("abc", NewCandidates("abcd"), 3)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

package game

import "errors"

var (
	// ErrLengthMismatch is returned by ComputePattern when candidate and
	// guess lengths differ. Callers guard against it before scoring.
	ErrLengthMismatch = errors.New("game: candidate and guess length differ")

	// ErrGuessLengthMismatch means a guess does not have the session's
	// word length.
	ErrGuessLengthMismatch = errors.New("game: guess does not have the session word length")

	// ErrEmptyCandidateSet means there is nothing left to partition,
	// usually because no dictionary word has the requested length.
	ErrEmptyCandidateSet = errors.New("game: candidate set is empty")

	// ErrGameFinished is returned for guesses after the word was revealed.
	ErrGameFinished = errors.New("game: game finished")
)

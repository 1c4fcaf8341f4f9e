// internal/words/words.go
//
// Dictionary loading for the game engine.
//
// Responsibilities:
//   - Read whitespace-delimited token lists from readers and files.
//   - Filter a token list to one word length (Prune), dropping duplicates.
//   - Supply the default dictionary: the file named by
//     WORDS_DICTIONARY_FILE if set, else the list embedded in assets.
//
// Constraints:
//   • Tokens are kept exactly as written: no case folding, no alphabet check.
//   • Length is counted in characters (runes), not bytes.
//   • The default dictionary is loaded once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/robalobadob/absurdle/assets"
)

// ErrInvalidWordLength is returned for a requested word length below 1.
var ErrInvalidWordLength = errors.New("words: word length must be at least 1")

var (
	initOnce      sync.Once
	defaultTokens []string
	initialErr    error
)

// ReadTokens splits r into whitespace-delimited tokens.
func ReadTokens(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// ReadFile loads every token of the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTokens(f)
}

// Prune keeps the tokens of exactly length characters, deduplicated.
func Prune(tokens []string, length int) (mapset.Set[string], error) {
	if length < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWordLength, length)
	}
	set := mapset.NewThreadUnsafeSet[string]()
	for _, w := range tokens {
		if utf8.RuneCountInString(w) == length {
			set.Add(w)
		}
	}
	return set, nil
}

// Default returns the default dictionary tokens.
// Returns an error if the list cannot be read or is empty.
func Default() ([]string, error) {
	initOnce.Do(func() {
		if path := os.Getenv("WORDS_DICTIONARY_FILE"); path != "" {
			defaultTokens, initialErr = ReadFile(path)
		} else {
			f, err := assets.Dictionary()
			if err != nil {
				initialErr = err
				return
			}
			defer f.Close()
			defaultTokens, initialErr = ReadTokens(f)
		}
		if initialErr == nil && len(defaultTokens) == 0 {
			initialErr = errors.New("words: default dictionary is empty")
		}
	})
	return defaultTokens, initialErr
}

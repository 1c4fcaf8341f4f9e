package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/absurdle/internal/game"
	"github.com/robalobadob/absurdle/internal/render"
	"github.com/robalobadob/absurdle/internal/words"
)

type playOptions struct {
	Dictionary string // file path or source name; prompted when empty
	Length     int    // prompted when 0
	Style      render.Style
}

// play runs one console game: it reads prompts and guesses as
// whitespace-separated tokens from in and writes the transcript to out.
// Any rejected guess ends the session with an error.
func play(ctx context.Context, in io.Reader, out io.Writer, src words.Source, opts playOptions) error {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}

	fmt.Fprintln(out, "Welcome to the game of Absurdle.")

	dict := opts.Dictionary
	if dict == "" {
		fmt.Fprint(out, "What dictionary would you like to use? ")
		tok, err := next()
		if err != nil {
			return err
		}
		dict = tok
	}

	length := opts.Length
	if length == 0 {
		fmt.Fprint(out, "What length word would you like to guess? ")
		tok, err := next()
		if err != nil {
			return err
		}
		if length, err = strconv.Atoi(tok); err != nil {
			return fmt.Errorf("word length %q: %w", tok, err)
		}
	}

	tokens, err := loadDictionary(ctx, src, dict)
	if err != nil {
		return err
	}
	g, err := game.New(tokens, length, dict)
	if err != nil {
		return err
	}
	log.Debug().Str("dictionary", dict).Int("length", length).Int("candidates", g.Remaining()).Msg("game started")

	for !g.Finished() {
		fmt.Fprint(out, "> ")
		guess, err := next()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		p, err := g.ApplyGuess(guess)
		if err != nil {
			return err
		}
		log.Debug().Str("guess", guess).Int("remaining", g.Remaining()).Msg("guess applied")
		fmt.Fprintf(out, ": %s\n\n", render.Row(p, guess, opts.Style))
	}

	return render.Summary(out, g.Summary(), opts.Style)
}

// loadDictionary reads dict as a file when one exists at that path and
// asks src otherwise.
func loadDictionary(ctx context.Context, src words.Source, dict string) ([]string, error) {
	if st, err := os.Stat(dict); err == nil && !st.IsDir() {
		return words.ReadFile(dict)
	}
	return src.Tokens(ctx, dict)
}

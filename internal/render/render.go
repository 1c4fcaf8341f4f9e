// Package render turns patterns into console rows and the end-of-game
// summary.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/absurdle/internal/game"
)

// Style selects the glyph set.
type Style string

const (
	StyleEmoji Style = "emoji" // 🟩 🟨 ⬜
	StyleASCII Style = "ascii" // G Y _
	StyleColor Style = "color" // guess letters on coloured backgrounds
)

// ParseStyle maps a flag value to a Style; unknown values fall back to emoji.
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleASCII:
		return StyleASCII
	case StyleColor:
		return StyleColor
	}
	return StyleEmoji
}

// Row renders one guess. guess is only used by StyleColor.
func Row(p game.Pattern, guess string, style Style) string {
	switch style {
	case StyleASCII:
		var b strings.Builder
		for _, m := range p.Marks() {
			switch m {
			case game.MarkExact:
				b.WriteByte('G')
			case game.MarkPartial:
				b.WriteByte('Y')
			default:
				b.WriteByte('_')
			}
		}
		return b.String()
	case StyleColor:
		letters := []rune(guess)
		marks := p.Marks()
		if len(letters) != len(marks) {
			return p.Emoji()
		}
		var b strings.Builder
		for i, m := range marks {
			b.WriteString(color.Colorize(colorFor(m), " "+strings.ToUpper(string(letters[i]))+" "))
		}
		return b.String()
	}
	return p.Emoji()
}

func colorFor(m game.Mark) string {
	switch m {
	case game.MarkExact:
		return color.GreenBackground + color.Black
	case game.MarkPartial:
		return color.YellowBackground + color.Black
	}
	return color.GrayBackground + color.White
}

// Summary writes "Absurdle N/∞", a blank line, then one row per guess.
func Summary(w io.Writer, s game.Summary, style Style) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", Headline(s.Turns)); err != nil {
		return err
	}
	for i, p := range s.Patterns {
		guess := ""
		if i < len(s.Guesses) {
			guess = s.Guesses[i]
		}
		if _, err := fmt.Fprintln(w, Row(p, guess, style)); err != nil {
			return err
		}
	}
	return nil
}

// Headline is the first summary line on its own.
func Headline(turns int) string {
	return fmt.Sprintf("Absurdle %d/∞", turns)
}

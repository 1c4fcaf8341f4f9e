package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/TwiN/go-color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/absurdle/internal/game"
)

func TestParseStyle(t *testing.T) {
	assert.Equal(t, StyleASCII, ParseStyle("ASCII"))
	assert.Equal(t, StyleColor, ParseStyle(" color "))
	assert.Equal(t, StyleEmoji, ParseStyle("emoji"))
	assert.Equal(t, StyleEmoji, ParseStyle("whatever"))
}

func TestRow(t *testing.T) {
	p := game.Pattern("2100")
	assert.Equal(t, "🟩🟨⬜⬜", Row(p, "abcd", StyleEmoji))
	assert.Equal(t, "GY__", Row(p, "abcd", StyleASCII))
}

func TestRowColor(t *testing.T) {
	color.Toggle(true)
	p := game.Pattern("210")
	row := Row(p, "abc", StyleColor)
	assert.Contains(t, row, color.GreenBackground)
	assert.Contains(t, row, color.YellowBackground)
	assert.Contains(t, row, " A ")
	assert.Contains(t, row, " C ")

	// Without a matching guess there is nothing to colour.
	assert.Equal(t, p.Emoji(), Row(p, "", StyleColor))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	err := Summary(&buf, game.Summary{
		Turns:    2,
		Finished: true,
		Guesses:  []string{"abc", "xyz"},
		Patterns: []game.Pattern{"000", "222"},
	}, StyleEmoji)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Absurdle 2/∞",
		"",
		"⬜⬜⬜",
		"🟩🟩🟩",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

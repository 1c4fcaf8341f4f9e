// Package assets embeds the default dictionary shipped with the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed dictionary.txt
var FS embed.FS

// Dictionary opens the embedded default dictionary
// (whitespace-delimited tokens).
func Dictionary() (fs.File, error) {
	return FS.Open("dictionary.txt")
}

// Command absurdle plays Absurdle on the console and manages the
// dictionary catalog.
//
//	absurdle [play] [-dict name|file] [-length n] [-glyphs emoji|ascii|color]
//	absurdle import -name NAME FILE
//	absurdle list
//
// The catalog lives at -db (default $DB_PATH); play works without one.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/absurdle/internal/dictstore"
	"github.com/robalobadob/absurdle/internal/render"
	"github.com/robalobadob/absurdle/internal/words"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "warn")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	args := os.Args[1:]
	cmd := "play"
	if len(args) > 0 && (args[0] == "play" || args[0] == "import" || args[0] == "list") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "import":
		err = runImport(args)
	case "list":
		err = runList(args)
	default:
		err = runPlay(args)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("absurdle failed")
		os.Exit(1)
	}
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	dict := fs.String("dict", "", "dictionary file or catalog name (prompted when empty)")
	length := fs.Int("length", 0, "word length (prompted when 0)")
	glyphs := fs.String("glyphs", "emoji", "emoji|ascii|color")
	dbPath := fs.String("db", getEnv("DB_PATH", ""), "dictionary catalog path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var src words.Source = words.WithDefault(nil)
	if *dbPath != "" {
		catalog, err := dictstore.Open(*dbPath)
		if err != nil {
			return err
		}
		defer catalog.Close()
		src = words.WithDefault(catalog)
	}

	return play(context.Background(), os.Stdin, os.Stdout, src, playOptions{
		Dictionary: *dict,
		Length:     *length,
		Style:      render.ParseStyle(*glyphs),
	})
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	name := fs.String("name", "", "catalog name for the dictionary")
	dbPath := fs.String("db", getEnv("DB_PATH", "./data/absurdle.db"), "dictionary catalog path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: absurdle import -name NAME FILE")
	}

	tokens, err := words.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	catalog, err := dictstore.Open(*dbPath)
	if err != nil {
		return err
	}
	defer catalog.Close()

	n, err := catalog.Import(context.Background(), *name, tokens, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Printf("\nimported %d words into %q\n", n, *name)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", getEnv("DB_PATH", "./data/absurdle.db"), "dictionary catalog path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	catalog, err := dictstore.Open(*dbPath)
	if err != nil {
		return err
	}
	defer catalog.Close()

	infos, err := words.WithDefault(catalog).(words.Lister).List(context.Background())
	if err != nil {
		return err
	}
	for _, in := range infos {
		fmt.Printf("%-20s %d\n", in.Name, in.Words)
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

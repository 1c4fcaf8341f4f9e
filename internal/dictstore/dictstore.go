// internal/dictstore/dictstore.go
//
// SQLite-backed catalog of named dictionaries.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Importing, listing and loading dictionaries by name.
//
// Only dictionaries live here; game sessions are never persisted.

package dictstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/absurdle/internal/words"
)

//go:embed sql/*.sql
var migrations embed.FS

// ErrNotFound matches words.ErrUnknownDictionary under errors.Is.
var ErrNotFound = fmt.Errorf("dictstore: %w", words.ErrUnknownDictionary)

// Store is the dictionary catalog.
type Store struct {
	db *sql.DB
}

// Open opens (and creates if missing) the catalog at dsn and migrates it.
// The parent directory of a file path is created as needed.
func Open(dsn string) (*Store, error) {
	memory := inMemory(dsn)
	if !memory {
		dir := filepath.Dir(dbPath(dsn))
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", withPragmas(dsn))
	if err != nil {
		return nil, err
	}
	if memory {
		// Every connection to :memory: is a separate, empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

const pragmas = "_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"

// withPragmas appends the connection pragmas, keeping any query the
// caller already put on dsn.
func withPragmas(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragmas
	}
	return dsn + "?" + pragmas
}

func inMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// dbPath is the file a dsn points at, without "file:" or a query.
func dbPath(dsn string) string {
	p, _, _ := strings.Cut(dsn, "?")
	return strings.TrimPrefix(p, "file:")
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// migrate applies sql/*.sql in lexical order, each inside its own
// transaction, skipping files already recorded in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// Import replaces dictionary name with tokens in one transaction and
// returns the number of distinct words stored. Progress is drawn on
// progress when it is non-nil.
func (s *Store) Import(ctx context.Context, name string, tokens []string, progress io.Writer) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == words.DefaultName {
		return 0, fmt.Errorf("%w: %q", words.ErrReservedName, name)
	}
	if progress == nil {
		progress = io.Discard
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE name=?`, name); err != nil {
		return 0, fmt.Errorf("clear %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO dictionaries (name, created_at) VALUES (?,?)`,
		name, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("insert %s: %w", name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO dictionary_words (dictionary, word) VALUES (?,?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	bar := progressbar.NewOptions(len(tokens),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("importing "+name),
		progressbar.OptionShowCount(),
	)
	n := 0
	for _, w := range tokens {
		res, err := stmt.ExecContext(ctx, name, w)
		if err != nil {
			return 0, fmt.Errorf("insert word %q: %w", w, err)
		}
		if k, _ := res.RowsAffected(); k > 0 {
			n++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	log.Info().Str("dictionary", name).Int("words", n).Msg("dictionary imported")
	return n, nil
}

// Tokens returns every word of dictionary name, sorted.
func (s *Store) Tokens(ctx context.Context, name string) ([]string, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM dictionaries WHERE name=?`, name).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT word FROM dictionary_words WHERE dictionary=? ORDER BY word`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// List reports each catalog dictionary and its size, by name.
func (s *Store) List(ctx context.Context) ([]words.Info, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT d.name, COUNT(w.word)
        FROM dictionaries d
        LEFT JOIN dictionary_words w ON w.dictionary = d.name
        GROUP BY d.name
        ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []words.Info{}
	for rows.Next() {
		var in words.Info
		if err := rows.Scan(&in.Name, &in.Words); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

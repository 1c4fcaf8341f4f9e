package words

import (
	"context"
	"errors"
)

// DefaultName is the dictionary name served from the embedded list.
const DefaultName = "default"

var (
	// ErrUnknownDictionary is returned by a Source that has no such name.
	ErrUnknownDictionary = errors.New("words: unknown dictionary")

	// ErrReservedName rejects storing a dictionary under a name a Source
	// answers itself (DefaultName) or an empty name.
	ErrReservedName = errors.New("words: reserved dictionary name")
)

// Source resolves a dictionary name to its raw tokens.
type Source interface {
	Tokens(ctx context.Context, name string) ([]string, error)
}

// Lister is implemented by sources that can enumerate their dictionaries.
type Lister interface {
	List(ctx context.Context) ([]Info, error)
}

// Info describes one named dictionary.
type Info struct {
	Name  string `json:"name"`
	Words int    `json:"words"`
}

type withDefault struct {
	next Source
}

// WithDefault serves DefaultName from Default() and delegates every other
// name to next. A nil next knows no other dictionary.
func WithDefault(next Source) Source {
	return withDefault{next: next}
}

func (s withDefault) Tokens(ctx context.Context, name string) ([]string, error) {
	if name == "" || name == DefaultName {
		return Default()
	}
	if s.next == nil {
		return nil, ErrUnknownDictionary
	}
	return s.next.Tokens(ctx, name)
}

// List reports the default dictionary first, then whatever next lists.
func (s withDefault) List(ctx context.Context) ([]Info, error) {
	toks, err := Default()
	if err != nil {
		return nil, err
	}
	out := []Info{{Name: DefaultName, Words: len(toks)}}
	if l, ok := s.next.(Lister); ok {
		more, err := l.List(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, more...)
	}
	return out, nil
}

// internal/httpserver/server.go
//
// HTTP server wiring for the Absurdle backend.
// Responsibilities:
//   - Router + middleware (request IDs, access log, JSON, CORS, timeouts, panic recovery).
//   - Public endpoints: "/", "/health", "/dictionaries".
//   - Game endpoints: POST /game/new, then POST /game/guess and
//     GET /game/summary authorised by the session token from /game/new.
//   - Admin endpoint for uploading dictionaries into the catalog.
//
// Notes:
//   - Each session owns its own candidate set; the store serializes guesses
//     on one session.
//   - Sessions are single player and live only in memory.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/absurdle/internal/game"
	"github.com/robalobadob/absurdle/internal/render"
	"github.com/robalobadob/absurdle/internal/store"
	"github.com/robalobadob/absurdle/internal/words"
)

// Config carries the settings main reads from the environment.
type Config struct {
	JWTSecret         []byte        // HS256 key for session tokens
	SessionTTL        time.Duration // token lifetime; 24h when zero
	AdminPasswordHash string        // bcrypt hash; empty disables /admin
	ClientOrigin      string        // CORS origin; http://localhost:5173 when empty
	Catalog           Importer      // target of dictionary uploads; nil disables /admin
}

// Server bundles router, session store and dictionary source.
type Server struct {
	r     *chi.Mux
	store store.Store
	dicts words.Source
	cfg   Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, dicts words.Source, cfg Config) *Server {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, dicts: dicts, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"absurdle","endpoints":["/health","/dictionaries","POST /game/new","POST /game/guess","GET /game/summary"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/dictionaries", s.handleDictionaries)

	s.r.Post("/game/new", s.handleNewGame)
	s.r.With(s.withSession()).Post("/game/guess", s.handleGuess)
	s.r.With(s.withSession()).Get("/game/summary", s.handleSummary)

	s.mountAdmin()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests and http.Server).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes method, path, status, size and duration for every request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, dur time.Duration) {
	hlog.FromRequest(r).Info().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("dur", dur).
		Msg("http")
})

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.ClientOrigin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Dictionary string `json:"dictionary"` // catalog name; "default" when empty
	Length     int    `json:"length"`     // word length L
}
type newGameRes struct {
	GameID     string `json:"gameId"`
	Token      string `json:"token"`
	Dictionary string `json:"dictionary"`
	Length     int    `json:"length"`
}

// handleNewGame loads the dictionary, builds the candidate set for the
// requested length and hands back a session token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Dictionary == "" {
		req.Dictionary = words.DefaultName
	}

	tokens, err := s.dicts.Tokens(r.Context(), req.Dictionary)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	g, err := game.New(tokens, req.Length, req.Dictionary)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signSession(g.ID)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign session")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, tok, exp)

	hlog.FromRequest(r).Info().
		Str("gameId", g.ID).
		Str("dictionary", g.Dictionary).
		Int("length", g.Length).
		Int("candidates", g.Remaining()).
		Msg("game started")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Token: tok, Dictionary: g.Dictionary, Length: g.Length})
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Pattern   string      `json:"pattern"` // emoji row
	ASCII     string      `json:"ascii"`   // G/Y/_ row
	Marks     []game.Mark `json:"marks"`
	State     string      `json:"state"` // "playing" | "won"
	Turns     int         `json:"turns"`
	Remaining int         `json:"remaining"`
}

// handleGuess applies a guess to the caller's session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	var res guessRes
	err := s.store.Update(r.Context(), sessionID(r), func(g *game.Game) error {
		p, err := g.ApplyGuess(req.Guess)
		if err != nil {
			return err
		}
		res = guessRes{
			Pattern:   p.Emoji(),
			ASCII:     render.Row(p, req.Guess, render.StyleASCII),
			Marks:     p.Marks(),
			State:     g.State(),
			Turns:     g.Turns(),
			Remaining: g.Remaining(),
		}
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// summaryRes is returned by GET /game/summary.
type summaryRes struct {
	Turns    int      `json:"turns"`
	Finished bool     `json:"finished"`
	Patterns []string `json:"patterns"`
	Text     string   `json:"text"` // "Absurdle N/∞"
}

// handleSummary reports the transcript of the caller's session.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var sum game.Summary
	err := s.store.Update(r.Context(), sessionID(r), func(g *game.Game) error {
		sum = g.Summary()
		return nil
	})
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	rows := make([]string, len(sum.Patterns))
	for i, p := range sum.Patterns {
		rows[i] = p.Emoji()
	}
	_ = json.NewEncoder(w).Encode(summaryRes{
		Turns:    sum.Turns,
		Finished: sum.Finished,
		Patterns: rows,
		Text:     render.Headline(sum.Turns),
	})
}

// handleDictionaries lists the dictionaries a game can be started from.
func (s *Server) handleDictionaries(w http.ResponseWriter, r *http.Request) {
	l, ok := s.dicts.(words.Lister)
	if !ok {
		_ = json.NewEncoder(w).Encode([]words.Info{})
		return
	}
	out, err := l.List(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list dictionaries")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(out)
}

// writeGameError maps engine and lookup errors to status codes.
func writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, words.ErrInvalidWordLength):
		http.Error(w, `{"error":"invalid_length"}`, http.StatusBadRequest)
	case errors.Is(err, game.ErrGuessLengthMismatch):
		http.Error(w, `{"error":"guess_length_mismatch"}`, http.StatusBadRequest)
	case errors.Is(err, words.ErrUnknownDictionary):
		http.Error(w, `{"error":"unknown_dictionary"}`, http.StatusNotFound)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	case errors.Is(err, game.ErrEmptyCandidateSet):
		http.Error(w, `{"error":"no_candidates"}`, http.StatusUnprocessableEntity)
	case errors.Is(err, game.ErrGameFinished):
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("game request failed")
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}
}

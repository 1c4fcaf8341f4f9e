package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/absurdle/internal/words"
)

// maxUploadBytes bounds a dictionary upload.
const maxUploadBytes = 8 << 20

// Importer stores a named dictionary. *dictstore.Store implements it.
type Importer interface {
	Import(ctx context.Context, name string, tokens []string, progress io.Writer) (int, error)
}

// mountAdmin registers the catalog upload route when both a catalog and an
// admin password hash are configured.
func (s *Server) mountAdmin() {
	if s.cfg.Catalog == nil || s.cfg.AdminPasswordHash == "" {
		return
	}
	s.r.With(s.requireAdmin).Put("/admin/dictionaries/{name}", s.handleUpload)
}

// requireAdmin checks HTTP basic auth against the bcrypt admin hash.
// Any username is accepted.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, pw, ok := r.BasicAuth()
		if !ok || !checkPassword(s.cfg.AdminPasswordHash, pw) {
			w.Header().Set("WWW-Authenticate", `Basic realm="absurdle-admin"`)
			http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// handleUpload replaces a catalog dictionary with the tokens in the body.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	tokens, err := words.ReadTokens(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		http.Error(w, `{"error":"bad_body"}`, http.StatusBadRequest)
		return
	}
	n, err := s.cfg.Catalog.Import(r.Context(), name, tokens, nil)
	if err != nil {
		if errors.Is(err, words.ErrReservedName) {
			http.Error(w, `{"error":"reserved_name"}`, http.StatusBadRequest)
			return
		}
		hlog.FromRequest(r).Error().Err(err).Str("dictionary", name).Msg("import dictionary")
		http.Error(w, `{"error":"import_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(words.Info{Name: name, Words: n})
}

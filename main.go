package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/absurdle/internal/dictstore"
	"github.com/robalobadob/absurdle/internal/httpserver"
	"github.com/robalobadob/absurdle/internal/store"
	"github.com/robalobadob/absurdle/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if _, err := words.Default(); err != nil {
		log.Fatal().Err(err).Msg("failed to load default dictionary")
	}

	catalog, err := dictstore.Open(getEnv("DB_PATH", "./data/absurdle.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open dictionary catalog")
	}
	defer catalog.Close()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_secret_change_me"
		log.Warn().Msg("JWT_SECRET not set, using development secret")
	}

	ttl := time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour
	sessions := store.NewMemoryStore(ttl)
	srv := httpserver.New(sessions, words.WithDefault(catalog), httpserver.Config{
		JWTSecret:         []byte(secret),
		SessionTTL:        ttl,
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		ClientOrigin:      os.Getenv("CLIENT_ORIGIN"),
		Catalog:           catalog,
	})

	port := getEnv("PORT", "5175")
	hs := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", port).Msg("starting absurdle server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return store.Janitor(ctx, sessions, time.Minute)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil && n > 0 {
		return n
	}
	return def
}

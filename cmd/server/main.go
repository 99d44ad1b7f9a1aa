package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"team-draft/internal/config"
	"team-draft/internal/constants"
	fxmodules "team-draft/internal/fx"
	"team-draft/internal/logger"
	"team-draft/internal/middleware"
	"team-draft/internal/server"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func newRouter(draftServer *server.DraftServer, cfg *config.Config, log zerolog.Logger) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(c.Handler)
	r.Use(middleware.RequestID(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(constants.RequestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	path, handler := draftServer.Handler()
	r.Mount(path, handler)
	return r
}

func runServer(
	lc fx.Lifecycle,
	draftServer *server.DraftServer,
	cfg *config.Config,
	db *sql.DB,
	log zerolog.Logger,
) {
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && level != zerolog.NoLevel {
		log = logger.SetLevel(level)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: newRouter(draftServer, cfg, log),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Str("score_model", cfg.ScoreModel).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Msg("error closing database connection")
			}
			log.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

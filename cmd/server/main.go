package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	webAdapter "github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/adapters/web"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/bootstrap"
	"github.com/rimandagantarianto-gif/siarumahsakitrimanda/internal/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("config")
	}
	log := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := bootstrap.New(ctx, cfg, log)

	handler := webAdapter.NewHandler(c.Service, webAdapter.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		SessionSecret:    cfg.SessionSecret,
		SessionTTL:       cfg.SessionTTL,
		Production:       cfg.IsProduction(),
		SummaryRateLimit: cfg.SummaryRateLimit,
		Logger:           log,
	})

	srv := newServer(cfg, handler)

	go func() {
		log.Info().Str("addr", cfg.AppAddr).Str("env", cfg.AppEnv).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      handler,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}
}

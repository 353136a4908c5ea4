package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"gymstudio/internal/config"
	"gymstudio/internal/devproxy"
	"gymstudio/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger.Setup(cfg.AppEnv, cfg.LogLevel)

	h, err := devproxy.New(cfg.DevProxyTarget)
	if err != nil {
		log.Fatal().Err(err).Msg("devproxy init failed")
	}

	srv := &http.Server{
		Addr:              cfg.DevProxyAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.DevProxyAddr).Str("target", cfg.DevProxyTarget).Msg("devproxy listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("devproxy stopped")
	}
}

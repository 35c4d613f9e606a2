package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/imposter/internal/adapters/http"
	"github.com/dkeye/imposter/internal/app"
	"github.com/dkeye/imposter/internal/config"
	"github.com/dkeye/imposter/internal/content"
	"github.com/dkeye/imposter/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Err(err).Str("level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	bank, err := loadBank(cfg.ContentFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load content")
	}

	deps := core.Deps{Bank: bank, DefaultCategory: cfg.DefaultCategory}.WithDefaults()
	if deps.DefaultCategory != cfg.DefaultCategory {
		log.Warn().Str("wanted", cfg.DefaultCategory).Str("using", deps.DefaultCategory).Msg("default category not in bank")
		cfg.DefaultCategory = deps.DefaultCategory
	}

	rooms := app.NewRoomRegistry(deps)
	gw := app.NewGateway(app.NewRegistry(), rooms, app.SimplePolicy{})

	r := router.SetupRouter(ctx, cfg, gw, bank)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Int("categories", len(bank.Categories())).Msg("Imposter server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	rooms.Close()
	log.Info().Msg("Server exited gracefully")
}

func loadBank(path string) (*content.StaticBank, error) {
	if path == "" {
		return content.Default(), nil
	}
	b, err := content.Load(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", path).Msg("loaded content bank")
	return b, nil
}

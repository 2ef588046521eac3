package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"portfolioBenchBot/internal/config"
	"portfolioBenchBot/internal/finance"
	"portfolioBenchBot/internal/openai"
	"portfolioBenchBot/internal/server"
	"portfolioBenchBot/internal/storage"
	"portfolioBenchBot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	config.LoadDotEnv(boot)
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := cfg.Logger(os.Stderr, false)

	// Ensure parent directory for the DB exists
	_ = os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755)
	db, err := storage.OpenSQLite("file:" + cfg.DBPath + "?_fk=1")
	if err != nil {
		log.Fatal().Err(err).Msg("open sqlite")
	}
	defer db.Close()
	if err := storage.InitSchema(db); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}
	log.Info().Str("path", cfg.DBPath).Msg("db: schema ensured (prices, price_windows, usage)")
	store := storage.NewStore(db)

	provider := finance.NewCachedProvider(finance.NewYahooClient(log), store, log)
	deps := telegram.Deps{
		Analyzer:          finance.NewAnalyzer(provider, cfg.Benchmark, log),
		Usage:             store,
		DefaultConfidence: cfg.Confidence,
	}
	if cfg.OpenAIKey != "" {
		deps.Commentator = openai.NewCommentator(cfg.OpenAIKey, cfg.OpenAIModel)
		log.Info().Str("model", cfg.OpenAIModel).Msg("openai commentary enabled")
	}

	tg, err := telegram.NewBot(cfg.TelegramToken, cfg.WebhookPublicURL, deps, log)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram init")
	}

	api := server.NewAPI(deps.Analyzer, cfg.Confidence, log)
	srv := server.NewServer(":"+cfg.Port, server.NewHTTPMux(tg.WebhookHandler, api, log))
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http: listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("stopped")
}

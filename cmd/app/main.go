// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Omyadav19/puresoul-20-02-2026/internal/config"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/domain/ports/adapter"
	aiAdapters "github.com/Omyadav19/puresoul-20-02-2026/internal/infra/adapters/ai"
	speechAdapters "github.com/Omyadav19/puresoul-20-02-2026/internal/infra/adapters/speech"
	pg "github.com/Omyadav19/puresoul-20-02-2026/internal/infra/db/postgres"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/logging"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/metrics"
	red "github.com/Omyadav19/puresoul-20-02-2026/internal/infra/redis"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/infra/web"
	"github.com/Omyadav19/puresoul-20-02-2026/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (relaxed config, noop AI fallback)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis (optional: cache + rate limiting degrade gracefully) ----
	var (
		limiter   web.TurnLimiter
		dashboard usecase.DashboardCacheStore
		chatInval usecase.DashboardInvalidator
	)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, continuing without cache and rate limiting")
		} else {
			defer redisClient.Close()
			limiter = red.NewRateLimiter(redisClient)
			cache := red.NewDashboardCache(redisClient, cfg.Redis.TTL)
			dashboard = cache
			chatInval = cache
		}
	}

	// ---- Repositories ----
	userRepo := pg.NewUserRepo(pool)
	sessionRepo := pg.NewSessionRepo(pool)
	messageRepo := pg.NewMessageRepo(pool)
	contactRepo := pg.NewContactRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- AI adapter (Groq -> Gemini -> noop in dev) ----
	var ai adapter.AIServiceAdapter
	switch {
	case cfg.AI.GroqKey != "":
		ai, err = aiAdapters.NewGroqAdapter(cfg.AI.GroqKey, cfg.AI.GroqBaseURL, cfg.AI.DefaultModel)
		if err != nil {
			logger.Fatal().Err(err).Msg("groq adapter")
		}
		logger.Info().Str("base", cfg.AI.GroqBaseURL).Str("model", cfg.AI.DefaultModel).Msg("AI adapter: Groq")
	case cfg.AI.GeminiKey != "":
		ai, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel, 0)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
		logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI adapter: Gemini")
	case cfg.Runtime.Dev:
		ai = aiAdapters.NewNoopAIAdapter()
		logger.Warn().Msg("AI adapter: noop (dev mode, no provider configured)")
	default:
		logger.Fatal().Msgf("no AI provider configured: set ai.groq_key or ai.gemini_key in %s", *cfgPath)
	}

	// ---- Speech adapter (optional) ----
	var speech adapter.SpeechSynthesizer
	if cfg.Speech.ElevenLabsKey != "" {
		speech, err = speechAdapters.NewElevenLabsAdapter(cfg.Speech.ElevenLabsKey, cfg.Speech.VoiceID, cfg.Speech.ModelID)
		if err != nil {
			logger.Fatal().Err(err).Msg("elevenlabs adapter")
		}
	} else {
		logger.Info().Msg("text-to-speech disabled: speech.elevenlabs_key not set")
	}

	// ---- Use cases ----
	authUC := usecase.NewAuthUseCase(userRepo, logger)
	creditUC := usecase.NewCreditLedgerUseCase(userRepo, logger)
	messageUC := usecase.NewMessageLogUseCase(messageRepo, logger)
	sessionUC := usecase.NewSessionUseCase(sessionRepo, messageRepo, txManager, logger)
	chatUC := usecase.NewChatUseCase(creditUC, sessionRepo, messageUC, ai, cfg.AI.DefaultModel, cfg.Chat.HistoryWindow, chatInval, logger)
	statsUC := usecase.NewAnalyticsUseCase(sessionRepo, messageRepo, dashboard, logger)
	contactUC := usecase.NewContactUseCase(contactRepo, logger)

	// ---- HTTP ----
	tokens := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	srv := web.NewServer(
		authUC, creditUC, sessionUC, chatUC, statsUC, contactUC,
		speech, tokens, limiter, cfg.Chat.RatePerMinute, logger,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("bye")
}
